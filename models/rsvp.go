package models

// Rsvp misafirin public sayfadan bıraktığı mesajdır (ziyaretçi defteri mantığı: tekilleştirme yapılmaz).
type Rsvp struct {
	BaseModel
	InvitationID uint        `gorm:"index;not null" json:"invitation_id"`
	Invitation   *Invitation `gorm:"foreignKey:InvitationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name         string      `gorm:"type:varchar(100);not null" json:"name"`
	Message      string      `gorm:"type:text;not null" json:"message"`
}
