package models

// User panel kullanıcısıdır. IsActive=false olan hesaplar (örn. ödeme askıya alındığında)
// kendi verilerini görebilir ancak hiçbir kaydı değiştiremez.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(150);not null" json:"name"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool   `gorm:"not null;index" json:"is_active"`
}
