package public

import (
	"dugun.link/configs/configslog"
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RsvpHandler public LCV gönderimini karşılar.
type RsvpHandler struct {
	service services.IRsvpService
}

func NewRsvpHandler(service services.IRsvpService) *RsvpHandler {
	return &RsvpHandler{service: service}
}

// Submit POST /i/:uniqueUrl/rsvp
// JSON gönderimlere 201 ile kayıt döner; form gönderimleri sayfaya geri yönlendirilir.
func (h *RsvpHandler) Submit(c *fiber.Ctx) error {
	uniqueURL := c.Params("uniqueUrl")

	// Okunamayan gövde boş form gibi değerlendirilir; adres kontrolü yine önce yapılır.
	var input services.RsvpInput
	if err := c.BodyParser(&input); err != nil {
		configslog.Log.Debug("LCV gövdesi okunamadı", zap.String("uniqueURL", uniqueURL), zap.Error(err))
		input = services.RsvpInput{}
	}

	rsvp, err := h.service.Submit(c.UserContext(), uniqueURL, input)
	if err != nil {
		return err
	}

	if c.Is("json") {
		return c.Status(fiber.StatusCreated).JSON(rsvp)
	}
	// uniqueURL Submit içinde doğrulandı; yalnızca [A-Za-z0-9_-] içerir.
	return c.Redirect("/i/"+uniqueURL+"?rsvp=ok", fiber.StatusFound)
}
