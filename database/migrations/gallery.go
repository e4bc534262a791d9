package migrations

import (
	"dugun.link/configs/configslog"
	"dugun.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateGalleriesTable(db *gorm.DB) error {
	configslog.SLog.Info("galleries tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.Gallery{}); err != nil {
		configslog.Log.Error("galleries tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("galleries tablosu migrate işlemi tamamlandı.")
	return nil
}
