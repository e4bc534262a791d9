package configs

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionUserIDKey oturumda giriş yapan kullanıcının ID'sinin tutulduğu anahtardır.
const SessionUserIDKey = "user_id"

// SetupSession panel oturumları için cookie tabanlı session store oluşturur.
// storage nil ise oturumlar bellekte tutulur.
func SetupSession(cfg AppConfig, storage fiber.Storage) *session.Store {
	return session.New(session.Config{
		Storage:        storage,
		Expiration:     cfg.SessionExpiration,
		KeyLookup:      "cookie:dugun_session",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.SessionCookieSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}
