package migrations

import (
	"dugun.link/configs/configslog"
	"dugun.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateRsvpsTable(db *gorm.DB) error {
	configslog.SLog.Info("rsvps tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.Rsvp{}); err != nil {
		configslog.Log.Error("rsvps tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("rsvps tablosu migrate işlemi tamamlandı.")
	return nil
}
