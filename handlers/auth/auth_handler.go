package auth

import (
	"dugun.link/configs"
	"dugun.link/configs/configslog"
	"dugun.link/handlers"
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service services.IAuthService
	store   *session.Store
}

func NewAuthHandler(service services.IAuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{service: service, store: store}
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek verisi.")
	}

	user, err := h.service.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	sess, err := h.store.Get(c)
	if err != nil {
		configslog.Log.Error("Login: session alınamadı", zap.Error(err))
		return err
	}
	// Oturum sabitlemeye karşı girişte yeni session ID verilir.
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(configs.SessionUserIDKey, user.ID)
	if err := sess.Save(); err != nil {
		configslog.Log.Error("Login: session kaydedilemedi", zap.Uint("userID", user.ID), zap.Error(err))
		return err
	}
	return c.JSON(user)
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Destroy(); err != nil {
		configslog.Log.Warn("Logout: session silinemedi", zap.Error(err))
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(user)
}
