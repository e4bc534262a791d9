package panel

import (
	"dugun.link/configs/configslog"
	"dugun.link/handlers"
	"dugun.link/pkg/queryparams"
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// InvitationHandler kullanıcının kendi davetiyelerini yönettiği JSON uç noktaları.
type InvitationHandler struct {
	service services.IInvitationService
}

func NewInvitationHandler(service services.IInvitationService) *InvitationHandler {
	return &InvitationHandler{service: service}
}

// ListInvitations GET /panel/invitations
func (h *InvitationHandler) ListInvitations(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	params := queryparams.DefaultListParams()
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Debug("ListInvitations: sorgu parametreleri okunamadı", zap.Error(err))
		params = queryparams.DefaultListParams()
	}
	params.Validate()

	result, err := h.service.GetInvitationsForUser(c.UserContext(), user, params)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// CreateInvitation POST /panel/invitations
func (h *InvitationHandler) CreateInvitation(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	var input services.InvitationInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek verisi.")
	}
	invitation, err := h.service.CreateInvitation(c.UserContext(), user, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(invitation)
}

// GetInvitation GET /panel/invitations/:id
func (h *InvitationHandler) GetInvitation(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	invitation, err := h.service.GetInvitation(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(invitation)
}

// UpdateInvitation PUT /panel/invitations/:id
func (h *InvitationHandler) UpdateInvitation(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	var input services.InvitationInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek verisi.")
	}
	invitation, err := h.service.UpdateInvitation(c.UserContext(), user, id, input)
	if err != nil {
		return err
	}
	return c.JSON(invitation)
}

// DeleteInvitation DELETE /panel/invitations/:id
// Galeri, misafir, LCV ve görüntüleme kayıtları da silinir.
func (h *InvitationHandler) DeleteInvitation(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteInvitation(c.UserContext(), user, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Publish POST /panel/invitations/:id/publish
func (h *InvitationHandler) Publish(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	invitation, err := h.service.Publish(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(invitation)
}

// Unpublish POST /panel/invitations/:id/unpublish
func (h *InvitationHandler) Unpublish(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	invitation, err := h.service.Unpublish(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(invitation)
}
