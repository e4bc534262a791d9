package models

// GuestCategory davetlinin grubudur.
type GuestCategory string

const (
	GuestCategoryFamily    GuestCategory = "family"
	GuestCategoryFriend    GuestCategory = "friend"
	GuestCategoryColleague GuestCategory = "colleague"
)

// GuestCategories geçerli kategorilerin listesi (sıra önemlidir, istatistik çıktısında kullanılır).
var GuestCategories = []GuestCategory{GuestCategoryFamily, GuestCategoryFriend, GuestCategoryColleague}

// Guest davetiye sahibinin davet listesindeki bir kişidir.
type Guest struct {
	BaseModel
	InvitationID   uint          `gorm:"index;not null" json:"invitation_id"`
	Invitation     *Invitation   `gorm:"foreignKey:InvitationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name           string        `gorm:"type:varchar(150);not null" json:"name"`
	Category       GuestCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	WhatsappNumber *string       `gorm:"type:varchar(20)" json:"whatsapp_number"`
}
