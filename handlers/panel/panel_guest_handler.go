package panel

import (
	"bytes"
	"fmt"

	"dugun.link/configs/configslog"
	"dugun.link/handlers"
	"dugun.link/pkg/queryparams"
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GuestHandler struct {
	service services.IGuestService
}

func NewGuestHandler(service services.IGuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

// ListGuests GET /panel/invitations/:id/guests?status=family&name=ali
func (h *GuestHandler) ListGuests(c *fiber.Ctx) error {
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

// CreateGuest POST /panel/invitations/:id/guests
func (h *GuestHandler) CreateGuest(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	invitationID, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	var input services.GuestInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek verisi.")
	}
	guest, err := h.service.Create(c.UserContext(), user, invitationID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(guest)
}

// UpdateGuest PUT /panel/guests/:guestID
func (h *GuestHandler) UpdateGuest(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	guestID, err := handlers.ParamID(c, "guestID")
	if err != nil {
		return err
	}
	var input services.GuestInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek verisi.")
	}
	guest, err := h.service.Update(c.UserContext(), user, guestID, input)
	if err != nil {
		return err
	}
	return c.JSON(guest)
}

// DeleteGuest DELETE /panel/guests/:guestID
func (h *GuestHandler) DeleteGuest(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	guestID, err := handlers.ParamID(c, "guestID")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), user, guestID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportGuests POST /panel/invitations/:id/guests/import (multipart, "file" alanı)
func (h *GuestHandler) ImportGuests(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	invitationID, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Lütfen formu kontrol edin.",
			"fields": map[string]string{"file": "CSV dosyası gerekli"},
		})
	}
	file, err := header.Open()
	if err != nil {
		configslog.Log.Error("ImportGuests: dosya açılamadı", zap.Uint("invitationID", invitationID), zap.Error(err))
		return err
	}
	defer file.Close()

	imported, err := h.service.ImportCSV(c.UserContext(), user, invitationID, file)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"imported": imported})
}

// ExportGuests GET /panel/invitations/:id/guests/export
func (h *GuestHandler) ExportGuests(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	invitationID, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	// Yarım kalmış bir CSV'nin 200 ile gitmemesi için önce tamponda üretilir.
	var buf bytes.Buffer
	if err := h.service.ExportCSV(c.UserContext(), user, invitationID, &buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="misafirler-%d.csv"`, invitationID))
	return c.Send(buf.Bytes())
}
