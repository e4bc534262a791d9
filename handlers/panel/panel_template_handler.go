package panel

import (
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
)

type TemplateHandler struct {
	service services.ITemplateService
}

func NewTemplateHandler(service services.ITemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// ListTemplates GET /panel/templates
func (h *TemplateHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.service.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": templates})
}
