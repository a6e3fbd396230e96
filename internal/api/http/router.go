package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/http/handlers"
	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/authz"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Roles          *handlers.RolesHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Every management route sits behind the
// bearer middleware plus one declared policy, so the full authorization
// surface is readable here instead of scattered across handlers.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	admin := auth.RequirePolicy(authz.PolicyAdminAccess)

	roles := app.Group("/roles", cfg.AuthMiddleware.Handle, admin)
	roles.Get("/", cfg.Roles.List)
	roles.Post("/create", cfg.Roles.Create)
	// Static segment before the :roleName wildcard so the global
	// permission union stays reachable.
	roles.Get("/permissions", cfg.Roles.AllPermissions)
	roles.Get("/:roleName/permissions", cfg.Roles.GetPermissions)
	roles.Put("/:roleName/permissions", cfg.Roles.SetPermissions)
	roles.Put("/:id", cfg.Roles.Rename)
	roles.Delete("/:id", cfg.Roles.Delete)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, admin)
	users.Get("/", cfg.Users.List)
	users.Post("/create", cfg.Users.Create)
	users.Put("/:id", cfg.Users.Update)
	users.Post("/:id/status", cfg.Users.SetStatus)
}
