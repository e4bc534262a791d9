package models

import "time"

// InvitationStatus davetiyenin yayın durumudur.
type InvitationStatus string

const (
	InvitationStatusDraft       InvitationStatus = "draft"
	InvitationStatusPublished   InvitationStatus = "published"
	InvitationStatusUnpublished InvitationStatus = "unpublished"
)

// Invitation bir düğünün davetiye sayfası ve ayarlarıdır.
// UniqueURL yalnızca ilk yayında atanır ve bir daha değişmez; yayından kaldırmak sadece Status'u değiştirir.
type Invitation struct {
	BaseModel
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	TemplateID uint      `gorm:"index;not null" json:"template_id"`
	Template   *Template `gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"template,omitempty"`

	UniqueURL   *string          `gorm:"type:varchar(64);uniqueIndex" json:"unique_url"`
	Status      InvitationStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	PublishedAt *time.Time       `json:"published_at"`

	// Çift bilgileri
	GroomName    string `gorm:"type:varchar(150);not null" json:"groom_name"`
	BrideName    string `gorm:"type:varchar(150);not null" json:"bride_name"`
	GroomParents string `gorm:"type:varchar(255)" json:"groom_parents"`
	BrideParents string `gorm:"type:varchar(255)" json:"bride_parents"`

	// Tören (nikah) ve düğün yemeği bilgileri
	CeremonyAt       *time.Time `json:"ceremony_at"`
	CeremonyVenue    string     `gorm:"type:varchar(255)" json:"ceremony_venue"`
	CeremonyAddress  string     `gorm:"type:text" json:"ceremony_address"`
	ReceptionAt      *time.Time `json:"reception_at"`
	ReceptionVenue   string     `gorm:"type:varchar(255)" json:"reception_venue"`
	ReceptionAddress string     `gorm:"type:text" json:"reception_address"`

	Latitude  *float64 `gorm:"type:numeric(10,7)" json:"latitude"`
	Longitude *float64 `gorm:"type:numeric(10,7)" json:"longitude"`
	MusicPath string   `gorm:"type:varchar(255)" json:"music_path"`
}

// IsPublished davetiyenin public sayfasının erişilebilir olup olmadığını döndürür.
func (i *Invitation) IsPublished() bool {
	return i.Status == InvitationStatusPublished && i.UniqueURL != nil
}

// OwnedBy davetiyenin verilen kullanıcıya ait olup olmadığını döndürür.
func (i *Invitation) OwnedBy(userID uint) bool {
	return i != nil && userID != 0 && i.UserID == userID
}
