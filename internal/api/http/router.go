package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Categories     *handlers.CategoriesHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Mutating routes carry the policy
// middleware in addition to the service-level checks.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	users := api.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.GetMe)
	users.Patch("/me", auth.RequirePermission(auth.ActionEditOwnProfile), cfg.Users.UpdateMe)
	users.Get("/", auth.RequirePermission(auth.ActionManageUsers), cfg.Users.List)
	users.Post("/", auth.RequirePermission(auth.ActionManageUsers), cfg.Users.Create)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", auth.RequirePermission(auth.ActionCreateTicket), cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id/status", auth.RequirePermission(auth.ActionUpdateTicketStatus), cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/priority", auth.RequirePermission(auth.ActionUpdateTicketPriority), cfg.Tickets.UpdatePriority)
	tickets.Delete("/:id", auth.RequirePermission(auth.ActionDeleteTicket), cfg.Tickets.Delete)
	tickets.Post("/:id/messages", cfg.Tickets.AddMessage)

	categories := api.Group("/categories", cfg.AuthMiddleware.Handle)
	categories.Get("/", cfg.Categories.List)
	categories.Post("/", auth.RequirePermission(auth.ActionManageCategories), cfg.Categories.Create)
	categories.Patch("/:id", auth.RequirePermission(auth.ActionManageCategories), cfg.Categories.Update)
	categories.Delete("/:id", auth.RequirePermission(auth.ActionManageCategories), cfg.Categories.Delete)

	stats := api.Group("/stats", cfg.AuthMiddleware.Handle, auth.RequirePermission(auth.ActionViewDashboard))
	stats.Get("/overview", cfg.Stats.Overview)
}
