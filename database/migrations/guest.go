package migrations

import (
	"dugun.link/configs/configslog"
	"dugun.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateGuestsTable(db *gorm.DB) error {
	configslog.SLog.Info("guests tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.Guest{}); err != nil {
		configslog.Log.Error("guests tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("guests tablosu migrate işlemi tamamlandı.")
	return nil
}
