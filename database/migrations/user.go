package migrations

import (
	"dugun.link/configs/configslog"
	"dugun.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateUsersTable(db *gorm.DB) error {
	configslog.SLog.Info("users tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.User{}); err != nil {
		configslog.Log.Error("users tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("users tablosu migrate işlemi tamamlandı.")
	return nil
}
