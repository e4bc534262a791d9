package routes

import (
	panelHandlers "dugun.link/handlers/panel"
	"dugun.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki JSON uç noktalarını tanımlar. Her istek
// AuthMiddleware'den geçer; sahiplik ve aktiflik kontrolleri servislerdedir.
func registerPanelRoutes(app *fiber.App, deps *Dependencies) {
	templateHandler := panelHandlers.NewTemplateHandler(deps.Templates)
	invitationHandler := panelHandlers.NewInvitationHandler(deps.Invitations)
	galleryHandler := panelHandlers.NewGalleryHandler(deps.Galleries)
	guestHandler := panelHandlers.NewGuestHandler(deps.Guests)
	rsvpHandler := panelHandlers.NewRsvpHandler(deps.Rsvps)
	statisticsHandler := panelHandlers.NewStatisticsHandler(deps.Statistics)

	panelGroup := app.Group("/panel")
	panelGroup.Use(middlewares.AuthMiddleware(deps.Sessions, deps.Auth))

	panelGroup.Get("/templates", templateHandler.ListTemplates)

	// --- Davetiyeler ---
	panelGroup.Get("/invitations", invitationHandler.ListInvitations)
	panelGroup.Post("/invitations", invitationHandler.CreateInvitation)
	panelGroup.Get("/invitations/:id", invitationHandler.GetInvitation)
	panelGroup.Put("/invitations/:id", invitationHandler.UpdateInvitation)
	panelGroup.Delete("/invitations/:id", invitationHandler.DeleteInvitation)
	panelGroup.Post("/invitations/:id/publish", invitationHandler.Publish)
	panelGroup.Post("/invitations/:id/unpublish", invitationHandler.Unpublish)

	// --- Galeri ---
	panelGroup.Get("/invitations/:id/galleries", galleryHandler.ListGalleries)
	panelGroup.Post("/invitations/:id/galleries", galleryHandler.CreateGallery)
	panelGroup.Post("/invitations/:id/galleries/reorder", galleryHandler.ReorderGalleries)
	panelGroup.Put("/galleries/:galleryID", galleryHandler.UpdateGallery)
	panelGroup.Delete("/galleries/:galleryID", galleryHandler.DeleteGallery)

	// --- Misafirler ---
	panelGroup.Get("/invitations/:id/guests", guestHandler.ListGuests)
	panelGroup.Post("/invitations/:id/guests", guestHandler.CreateGuest)
	panelGroup.Post("/invitations/:id/guests/import", guestHandler.ImportGuests)
	panelGroup.Get("/invitations/:id/guests/export", guestHandler.ExportGuests)
	panelGroup.Put("/guests/:guestID", guestHandler.UpdateGuest)
	panelGroup.Delete("/guests/:guestID", guestHandler.DeleteGuest)

	// --- LCV ve istatistik ---
	panelGroup.Get("/invitations/:id/rsvps", rsvpHandler.ListRsvps)
	panelGroup.Delete("/rsvps/:rsvpID", rsvpHandler.DeleteRsvp)
	panelGroup.Get("/invitations/:id/statistics", statisticsHandler.GetStatistics)
}
