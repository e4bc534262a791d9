package routes

import (
	publicHandlers "dugun.link/handlers/public"
	"dugun.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes misafirlerin açtığı davetiye sayfası ve LCV formu.
// İki uç ayrı limitlerle korunur.
func registerPublicRoutes(app *fiber.App, deps *Dependencies) {
	cfg := deps.Config
	invitationHandler := publicHandlers.NewInvitationHandler(deps.Public)
	rsvpHandler := publicHandlers.NewRsvpHandler(deps.Rsvps)

	renderLimit := middlewares.RateLimit("render", cfg.RenderRateLimit, cfg.RateLimitWindow, deps.LimiterStorage)
	rsvpLimit := middlewares.RateLimit("rsvp", cfg.RSVPRateLimit, cfg.RateLimitWindow, deps.LimiterStorage)

	app.Get("/i/:uniqueUrl", renderLimit, invitationHandler.Show)
	app.Post("/i/:uniqueUrl/rsvp", rsvpLimit, rsvpHandler.Submit)
}
