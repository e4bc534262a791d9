package public

import (
	"errors"

	"dugun.link/handlers"
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
)

// InvitationHandler yayındaki davetiye sayfasını gösterir.
type InvitationHandler struct {
	service services.IPublicInvitationService
}

func NewInvitationHandler(service services.IPublicInvitationService) *InvitationHandler {
	return &InvitationHandler{service: service}
}

// Show GET /i/:uniqueUrl
func (h *InvitationHandler) Show(c *fiber.Ctx) error {
	uniqueURL := c.Params("uniqueUrl")
	page, err := h.service.Render(c.UserContext(), uniqueURL, services.ViewMeta{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return handlers.RenderNotFound(c)
		}
		return err
	}

	data := fiber.Map{
		"Title":      page.Invitation.GroomName + " & " + page.Invitation.BrideName,
		"Invitation": page.Invitation,
		"Galleries":  page.Galleries,
		"UniqueURL":  uniqueURL,
		"RsvpOK":     c.Query("rsvp") == "ok",
	}
	if page.Template != nil {
		data["CSSPath"] = page.Template.CSSPath
		data["JSPath"] = page.Template.JSPath
	}
	return c.Render("public/invitation", data, "layouts/public")
}
