package models

// Gallery davetiye sayfasında gösterilen bir fotoğraftır. Order gösterim sırasını belirler, benzersiz olmak zorunda değildir.
type Gallery struct {
	BaseModel
	InvitationID uint        `gorm:"index:idx_gallery_invitation_order;not null" json:"invitation_id"`
	Invitation   *Invitation `gorm:"foreignKey:InvitationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PhotoPath    string      `gorm:"type:varchar(255);not null" json:"photo_path"`
	Caption      string      `gorm:"type:varchar(255)" json:"caption"`
	Order        int         `gorm:"column:sort_order;index:idx_gallery_invitation_order;not null;default:0" json:"order"`
}
