package routes

import (
	authHandlers "dugun.link/handlers/auth"
	"dugun.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App, deps *Dependencies) {
	authHandler := authHandlers.NewAuthHandler(deps.Auth, deps.Sessions)
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", middlewares.AuthMiddleware(deps.Sessions, deps.Auth), authHandler.Me)
}
