package migrations

import (
	"dugun.link/configs/configslog"
	"dugun.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateTemplatesTable(db *gorm.DB) error {
	configslog.SLog.Info("templates tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.Template{}); err != nil {
		configslog.Log.Error("templates tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("templates tablosu migrate işlemi tamamlandı.")
	return nil
}
