package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/animeaux-api/internal/config"
	"github.com/noah-isme/animeaux-api/internal/handler"
	"github.com/noah-isme/animeaux-api/internal/middleware"
	"github.com/noah-isme/animeaux-api/internal/models"
	"github.com/noah-isme/animeaux-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AnimalHandler        *handler.AnimalHandler
	FosterFamilyHandler  *handler.FosterFamilyHandler
	AdminActivityHandler *handler.AdminActivityHandler
	JWTMiddleware        fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	window := cfg.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}

	if deps.AnimalHandler != nil {
		animals := app.Group("/api/admin/animals",
			jwtMiddleware,
			middleware.RequireRole(models.UserRoleAdmin, models.UserRoleAnimalManager, models.UserRoleVolunteer),
			middleware.RateLimit("animals", cfg.RateLimitMax, window),
		)
		deps.AnimalHandler.Register(animals)
	}

	if deps.FosterFamilyHandler != nil {
		families := app.Group("/api/admin/foster-families",
			jwtMiddleware,
			middleware.RequireRole(models.UserRoleAdmin, models.UserRoleAnimalManager),
			middleware.RateLimit("foster-families", cfg.RateLimitMax, window),
		)
		deps.FosterFamilyHandler.Register(families)
	}

	if deps.AdminActivityHandler != nil {
		activity := app.Group("/api/admin/activity",
			jwtMiddleware,
			middleware.RequireRole(models.UserRoleAdmin),
			middleware.RateLimit("activity", cfg.RateLimitMax, window),
		)
		deps.AdminActivityHandler.Register(activity)
	}
}
