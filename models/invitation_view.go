package models

import "time"

// Cihaz türleri (user-agent'tan en iyi tahminle çıkarılır).
const (
	DeviceTypeDesktop = "desktop"
	DeviceTypeMobile  = "mobile"
	DeviceTypeTablet  = "tablet"
	DeviceTypeBot     = "bot"
	DeviceTypeUnknown = "unknown"
)

// InvitationView public sayfanın bir kez yüklenmesidir. Sadece eklenir; güncellenmez, tek tek silinmez.
type InvitationView struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	InvitationID uint        `gorm:"index:idx_view_invitation_viewed_at;not null" json:"invitation_id"`
	Invitation   *Invitation `gorm:"foreignKey:InvitationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	IPAddress    string      `gorm:"type:varchar(45);index" json:"ip_address"`
	UserAgent    string      `gorm:"type:text" json:"user_agent"`
	DeviceType   string      `gorm:"type:varchar(20)" json:"device_type"`
	Browser      string      `gorm:"type:varchar(50)" json:"browser"`
	ViewedAt     time.Time   `gorm:"index:idx_view_invitation_viewed_at;not null" json:"viewed_at"`
}
