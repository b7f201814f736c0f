package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/identity-service/internal/api/http/handlers"
	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/signup", cfg.Auth.Signup)
	app.Post("/signin", cfg.Auth.Signin)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
	users.Get("/:id", auth.RequireIdentity(), cfg.Users.Get)
	users.Put("/:id", auth.RequireIdentity(), cfg.Users.Update)
	users.Delete("/:id", auth.RequireIdentity(), cfg.Users.Delete)
}
