package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/citrapricylia-am/loopout-app/internal/api/http/handlers"
	"github.com/citrapricylia-am/loopout-app/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Patch("/", auth.RequireAdmin(), cfg.Tickets.Update)
	tickets.Delete("/:id", auth.RequireAdmin(), cfg.Tickets.Delete)

	app.Get("/notifications", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Notifications.List)
}
