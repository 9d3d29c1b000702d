package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/park-api/internal/api/http/handlers"
	"github.com/spec-kit/park-api/internal/auth"
	"github.com/spec-kit/park-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration. Metrics is optional.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Customers      *handlers.CustomersHandler
	AuthMiddleware *auth.AuthMiddleware
	Access         *auth.AccessDecider
	Metrics        fiber.Handler
}

// RegisterRoutes wires HTTP routes. The bearer token interceptor runs ahead of
// every route; each route then declares its access policy.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)

	public := cfg.Access.Authorize(auth.Public())
	admin := cfg.Access.Authorize(auth.RequireRole(domain.RoleAdmin))
	customer := cfg.Access.Authorize(auth.RequireRole(domain.RoleCustomer))

	app.Get("/health/live", public, cfg.Health.Live)
	app.Get("/health/ready", public, cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", public, cfg.Metrics)
	}

	api := app.Group("/api/v1")
	api.Post("/auth", public, cfg.Auth.Login)

	users := api.Group("/users")
	users.Post("", public, cfg.Users.Create)
	users.Get("", admin, cfg.Users.List)
	users.Get("/:id", cfg.Access.Authorize(auth.Either(
		auth.RequireRole(domain.RoleAdmin),
		auth.RequireRoleAndSelf(domain.RoleCustomer),
	)), cfg.Users.Get)
	users.Patch("/:id", cfg.Access.Authorize(auth.RequireAnyRoleAndSelf(domain.RoleAdmin, domain.RoleCustomer)), cfg.Users.UpdatePassword)

	customers := api.Group("/customers")
	customers.Post("", customer, cfg.Customers.Create)
	customers.Get("", admin, cfg.Customers.List)
	customers.Get("/details", customer, cfg.Customers.Details)
	customers.Get("/:id", admin, cfg.Customers.Get)
}
