package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sini context üzerinde taşır.
// BaseModel hook'ları CreatedBy/UpdatedBy alanlarını buradan doldurur.
const ContextUserIDKey contextKey = "user_id"

// ContextWithUserID verilen kullanıcı ID'sini context'e ekler.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini döndürür.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	if ctx == nil {
		return 0, false
	}
	userID, ok := ctx.Value(ContextUserIDKey).(uint)
	return userID, ok && userID != 0
}

// BaseModel tüm tablolarda ortak olan alanları içerir.
// Silme işlemleri fiziksel yapılır; alt kayıtlar veritabanı CASCADE kısıtlarıyla temizlenir.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *uint     `gorm:"index" json:"-"`
	UpdatedBy *uint     `gorm:"index" json:"-"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok {
		b.CreatedBy = &userID
		b.UpdatedBy = &userID
	}
	return nil
}

func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok {
		tx.Statement.SetColumn("updated_by", &userID)
	}
	return nil
}
