package middlewares

import (
	"time"

	"dugun.link/configs/configslog"
	"dugun.link/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// RateLimit istemci IP'si başına sabit pencereli bir limit uygular. storage nil ise
// sayaçlar bellekte tutulur; Redis verilirse tüm instance'lar aynı sayacı paylaşır.
// Limit aşıldığında limiter Retry-After başlığını ekler, biz 429 döneriz.
func RateLimit(name string, max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			metrics.RateLimited.WithLabelValues(name).Inc()
			configslog.Log.Debug("İstek limiti aşıldı", zap.String("limiter", name), zap.String("ip", c.IP()))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Çok fazla istek gönderdiniz, lütfen biraz sonra tekrar deneyin.",
			})
		},
	})
}
