package seeders

import (
	"errors"
	"os"

	"dugun.link/configs/configslog"
	"dugun.link/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDemoUser SEED_USER_EMAIL ve SEED_USER_PASSWORD tanımlıysa aktif bir kullanıcı oluşturur.
// Kullanıcı zaten varsa değiştirilmez.
func SeedDemoUser(db *gorm.DB) error {
	email := os.Getenv("SEED_USER_EMAIL")
	password := os.Getenv("SEED_USER_PASSWORD")
	if email == "" || password == "" {
		configslog.SLog.Info("SEED_USER_EMAIL/SEED_USER_PASSWORD tanımlı değil, demo kullanıcı atlanıyor.")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		configslog.SLog.Infof("Demo kullanıcı zaten mevcut (ID: %d).", existing.ID)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{Name: "Demo", Email: email, PasswordHash: string(hashed), IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	configslog.SLog.Infof("Demo kullanıcı oluşturuldu (ID: %d).", user.ID)
	return nil
}
