package configsdatabase

import (
	"fmt"
	"time"

	"dugun.link/configs"
	"dugun.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB PostgreSQL bağlantısını DB_* ortam değişkenlerine göre açar.
// Bağlantı kurulamazsa uygulama başlatılmaz (Fatal).
func InitDB() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		configs.GetEnvWithDefault("DB_HOST", "localhost"),
		configs.GetEnvWithDefault("DB_PORT", "5432"),
		configs.GetEnvWithDefault("DB_USER", "postgres"),
		configs.GetEnvWithDefault("DB_PASSWORD", ""),
		configs.GetEnvWithDefault("DB_NAME", "dugun"),
		configs.GetEnvWithDefault("DB_SSLMODE", "disable"),
		configs.GetEnvWithDefault("DB_TIMEZONE", "UTC"),
	)

	logLevel := logger.Warn
	if configs.GetEnvWithDefault("APP_ENV", "development") != "production" {
		logLevel = logger.Info
	}

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Fatal("Veritabanı havuzu alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvAsInt("DB_MAX_OPEN_CONNS", 25))
	sqlDB.SetMaxIdleConns(configs.GetEnvAsInt("DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(time.Duration(configs.GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute)

	configslog.SLog.Info("Veritabanı bağlantısı başarılı")
}

// GetDB açık bağlantıyı döndürür. InitDB'den önce çağrılırsa nil döner.
func GetDB() *gorm.DB {
	return db
}

// CloseDB bağlantı havuzunu kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Veritabanı havuzu alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
		return
	}
	configslog.SLog.Info("Veritabanı bağlantısı kapatıldı")
}
