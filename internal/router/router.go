package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-activities/internal/config"
	"github.com/noah-isme/gema-activities/internal/handler"
	"github.com/noah-isme/gema-activities/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ActivityHandler     *handler.ActivityHandler
	RosterStreamHandler *handler.RosterStreamHandler
	HealthProbes        []handler.HealthProbe
	// RosterGuard runs before signup and unregister, typically a rate limiter.
	RosterGuard fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbes...))

	app.Get("/metrics", observability.MetricsHandler())

	if deps.ActivityHandler != nil {
		var guards []fiber.Handler
		if deps.RosterGuard != nil {
			guards = append(guards, deps.RosterGuard)
		}
		deps.ActivityHandler.Register(app.Group("/activities"), guards...)
	}

	if deps.RosterStreamHandler != nil {
		deps.RosterStreamHandler.Register(app.Group("/ws"))
	}

	if cfg.StaticDir != "" {
		app.Static("/static", cfg.StaticDir)
		app.Get("/", func(c *fiber.Ctx) error {
			return c.Redirect("/static/index.html", fiber.StatusTemporaryRedirect)
		})
	}
}
