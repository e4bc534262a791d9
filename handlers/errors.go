package handlers

import (
	"errors"
	"strconv"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LocalsUserKey AuthMiddleware'in giriş yapan kullanıcıyı koyduğu Locals anahtarıdır.
const LocalsUserKey = "user"

// RespondError servis hatalarını HTTP yanıtına çevirir. Beklenmeyen hataların
// ayrıntısı yalnızca loglara yazılır, istemciye genel bir mesaj döner.
func RespondError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Lütfen formu kontrol edin.",
			"fields": ve.Fields,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kayıt bulunamadı."})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Bu işlem için yetkiniz yok."})
	case errors.Is(err, services.ErrTemplateInUse), errors.Is(err, services.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	configslog.Log.Error("İstek işlenemedi",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Beklenmeyen bir hata oluştu."})
}

// ErrorHandler fiber.Config.ErrorHandler olarak kullanılır. HTML isteyen
// istemcilere 404 sayfası çizilir, diğer her şey RespondError'a gider.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if isNotFound(err) && acceptsHTML(c) {
		return RenderNotFound(c)
	}
	return RespondError(c, err)
}

// NotFoundHandler hiçbir rotaya uymayan istekleri yakalar.
func NotFoundHandler(c *fiber.Ctx) error {
	return fiber.ErrNotFound
}

// RenderNotFound public sayfalarda kullanılan 404 sayfasını çizer.
func RenderNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title": "Sayfa Bulunamadı",
	}, "layouts/public")
}

func isNotFound(err error) bool {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code == fiber.StatusNotFound
	}
	return errors.Is(err, services.ErrNotFound)
}

func acceptsHTML(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML
}

// CurrentUser AuthMiddleware'den geçmiş isteğin kullanıcısını döndürür.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(LocalsUserKey).(*models.User)
	if !ok || user == nil {
		return nil, fiber.ErrUnauthorized
	}
	return user, nil
}

// ParamID rota parametresini pozitif bir ID olarak okur. Geçersiz ID bulunamadı sayılır.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, services.ErrNotFound
	}
	return uint(id), nil
}
