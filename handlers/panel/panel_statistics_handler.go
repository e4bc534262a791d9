package panel

import (
	"dugun.link/handlers"
	"dugun.link/services"

	"github.com/gofiber/fiber/v2"
)

type StatisticsHandler struct {
	service services.IStatisticsService
}

func NewStatisticsHandler(service services.IStatisticsService) *StatisticsHandler {
	return &StatisticsHandler{service: service}
}

// GetStatistics GET /panel/invitations/:id/statistics
func (h *StatisticsHandler) GetStatistics(c *fiber.Ctx) error {
	user, err := handlers.CurrentUser(c)
	if err != nil {
		return err
	}
	invitationID, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}
	stats, err := h.service.GetStatistics(c.UserContext(), user, invitationID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
