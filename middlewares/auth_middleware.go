package middlewares

import (
	"errors"

	"dugun.link/configs"
	"dugun.link/configs/configslog"
	"dugun.link/handlers"
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// AuthMiddleware session'daki kullanıcıyı yükler ve c.Locals("user")'a koyar.
// Pasif kullanıcılar da geçer; hangi işlemi yapabilecekleri servislerdeki politikalarla belirlenir.
func AuthMiddleware(store *session.Store, users services.IAuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			configslog.Log.Warn("AuthMiddleware: session alınamadı", zap.Error(err))
			return fiber.ErrUnauthorized
		}
		userID, ok := sess.Get(configs.SessionUserIDKey).(uint)
		if !ok || userID == 0 {
			return fiber.ErrUnauthorized
		}

		user, err := users.GetUserByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				// Kullanıcı silinmiş; oturum geçersiz.
				_ = sess.Destroy()
				return fiber.ErrUnauthorized
			}
			return err
		}

		c.Locals(handlers.LocalsUserKey, user)
		return c.Next()
	}
}
