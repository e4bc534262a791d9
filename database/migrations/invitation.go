package migrations

import (
	"dugun.link/configs/configslog"
	"dugun.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateInvitationsTable(db *gorm.DB) error {
	configslog.SLog.Info("invitations tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.Invitation{}); err != nil {
		configslog.Log.Error("invitations tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("invitations tablosu migrate işlemi tamamlandı.")
	return nil
}
