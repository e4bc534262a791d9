package panel

import (
	"dugun.link/handlers"
	"dugun.link/pkg/queryparams"
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
)

// RsvpHandler davetiye sahibinin gelen LCV mesajlarını görmesi ve silmesi için.
type RsvpHandler struct {
	service services.IRsvpService
}

func NewRsvpHandler(service services.IRsvpService) *RsvpHandler {
	return &RsvpHandler{service: service}
}

// ListRsvps GET /panel/invitations/:id/rsvps (en yeni önce)
func (h *RsvpHandler) ListRsvps(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	invitationID, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	params := queryparams.DefaultListParams()
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams()
	}
	result, err := h.service.List(c.UserContext(), user, invitationID, params)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// DeleteRsvp DELETE /panel/rsvps/:rsvpID
func (h *RsvpHandler) DeleteRsvp(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	rsvpID, err := handlers.ParamID(c, "rsvpID")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), user, rsvpID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
