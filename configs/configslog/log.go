package configslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) logger, SLog ise printf tarzı kullanım için sugared logger'dır.
// InitLogger çağrılmadan önce no-op logger ile başlarlar; testler bu sayede log kurulumu gerektirmez.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger APP_ENV ve LOG_LEVEL ortam değişkenlerine göre global logger'ları kurar.
func InitLogger() {
	var config zap.Config
	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(strings.ToLower(lvl))); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := config.Build()
	if err != nil {
		panic("logger başlatılamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
	zap.ReplaceGlobals(logger)
}

// SyncLogger tamponlanmış log kayıtlarını diske/çıktıya yazar.
func SyncLogger() {
	// stdout/stderr üzerinde Sync bazı platformlarda "invalid argument" döndürür, yok sayılır.
	_ = Log.Sync()
}
