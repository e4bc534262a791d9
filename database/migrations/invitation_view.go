package migrations

import (
	"dugun.link/configs/configslog"
	"dugun.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateInvitationViewsTable(db *gorm.DB) error {
	configslog.SLog.Info("invitation_views tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.InvitationView{}); err != nil {
		configslog.Log.Error("invitation_views tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("invitation_views tablosu migrate işlemi tamamlandı.")
	return nil
}
