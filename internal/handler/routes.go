package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"tripmate/internal/middleware"
	"tripmate/internal/service/auth"
)

// upgradeRequired rejects plain HTTP requests on the socket endpoint.
func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SetupRoutes mounts the REST API and, when socket is non-nil, the /ws endpoint.
func SetupRoutes(app *fiber.App, h *Handlers, authService auth.Service, socket fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if socket != nil {
		app.Get("/ws", upgradeRequired, socket)
	}

	api := app.Group("/api", middleware.AuthRequired(authService))

	trips := api.Group("/trips")
	trips.Post("/join", h.Trip.Join)
	trips.Get("/:id", h.Trip.Get)
	trips.Post("/:id/invite-expiration", h.Trip.UpdateInviteExpiration)
	trips.Post("/:id/regenerate-invite", h.Trip.RegenerateInvite)
	trips.Post("/:id/invite-email", h.Trip.SendInviteEmail)
	trips.Post("/:id/activity", h.Trip.Activity)
}
