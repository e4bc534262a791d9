package panel

import (
	"dugun.link/handlers"
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
)

type GalleryHandler struct {
	service services.IGalleryService
}

func NewGalleryHandler(service services.IGalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// ListGalleries GET /panel/invitations/:id/galleries
func (h *GalleryHandler) ListGalleries(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	invitationID, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	galleries, err := h.service.List(c.UserContext(), user, invitationID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": galleries})
}

// CreateGallery POST /panel/invitations/:id/galleries
func (h *GalleryHandler) CreateGallery(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	invitationID, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	var input services.GalleryInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek verisi.")
	}
	gallery, err := h.service.Create(c.UserContext(), user, invitationID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(gallery)
}

// UpdateGallery PUT /panel/galleries/:galleryID
func (h *GalleryHandler) UpdateGallery(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	galleryID, err := handlers.ParamID(c, "galleryID")
	if err != nil {
		return err
	}
	var input services.GalleryInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek verisi.")
	}
	gallery, err := h.service.Update(c.UserContext(), user, galleryID, input)
	if err != nil {
		return err
	}
	return c.JSON(gallery)
}

// DeleteGallery DELETE /panel/galleries/:galleryID
func (h *GalleryHandler) DeleteGallery(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	galleryID, err := handlers.ParamID(c, "galleryID")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), user, galleryID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderGalleries POST /panel/invitations/:id/galleries/reorder
func (h *GalleryHandler) ReorderGalleries(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	invitationID, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	var input services.ReorderInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek verisi.")
	}
	galleries, err := h.service.Reorder(c.UserContext(), user, invitationID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": galleries})
}
