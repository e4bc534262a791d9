package middlewares

import (
	"strconv"
	"time"

	"dugun.link/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// MetricsMiddleware istek süresini ve sayısını Prometheus'a yazar. Path etiketi
// rota şablonudur (/i/:uniqueUrl); böylece her davetiye ayrı seri açmaz.
// Zincirden dönen hata burada ErrorHandler'a verilir ki gerçek durum kodu ölçülsün.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		labels := []string{c.Method(), c.Route().Path, strconv.Itoa(c.Response().StatusCode())}
		metrics.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		metrics.RequestTotal.WithLabelValues(labels...).Inc()
		return nil
	}
}
