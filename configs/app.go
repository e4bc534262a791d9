package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"dugun.link/configs/configslog"

	"github.com/joho/godotenv"
)

// AppConfig uygulamanın ortam değişkenlerinden okunan ayarlarıdır.
type AppConfig struct {
	Env     string
	Port    string
	BaseURL string

	// ProxyHeader doluysa istemci IP'si bu başlıktan okunur (örn. X-Forwarded-For).
	ProxyHeader string

	SessionExpiration   time.Duration
	SessionCookieSecure bool

	RenderRateLimit int
	RSVPRateLimit   int
	RateLimitWindow time.Duration

	// RedisURL doluysa rate limit sayaçları tüm instance'lar arasında Redis'te paylaşılır.
	RedisURL string

	ViewQueueSize int
}

// LoadEnv .env dosyası varsa yükler. Dosya yoksa mevcut ortam değişkenleri kullanılır.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env dosyası bulunamadı, ortam değişkenleri kullanılacak")
	}
}

// LoadAppConfig ortamdan AppConfig oluşturur; eksik değerler için varsayılanları kullanır.
func LoadAppConfig() AppConfig {
	return AppConfig{
		Env:                 GetEnvWithDefault("APP_ENV", "development"),
		Port:                GetEnvWithDefault("APP_PORT", "3000"),
		BaseURL:             strings.TrimRight(GetEnvWithDefault("APP_BASE_URL", "http://localhost:3000"), "/"),
		ProxyHeader:         os.Getenv("PROXY_HEADER"),
		SessionExpiration:   time.Duration(GetEnvAsInt("SESSION_EXPIRATION_HOURS", 24)) * time.Hour,
		SessionCookieSecure: GetEnvAsBool("SESSION_COOKIE_SECURE", false),
		RenderRateLimit:     GetEnvAsInt("RATE_LIMIT_RENDER", 60),
		RSVPRateLimit:       GetEnvAsInt("RATE_LIMIT_RSVP", 10),
		RateLimitWindow:     time.Minute,
		RedisURL:            os.Getenv("REDIS_URL"),
		ViewQueueSize:       GetEnvAsInt("VIEW_QUEUE_SIZE", 1024),
	}
}

// IsProduction production ortamında çalışılıp çalışılmadığını döndürür.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func GetEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		configslog.SLog.Warnf("%s geçersiz (%q), varsayılan kullanılıyor: %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
