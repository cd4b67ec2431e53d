package handler

import (
	"github.com/gofiber/fiber/v2"

	"inquirysync/internal/http/middleware"
	"inquirysync/internal/service"
	"inquirysync/internal/tracelog"
)

// Dependencies bundles what the routes need.
type Dependencies struct {
	DB       Pinger
	Create   service.Bridge
	Update   service.Bridge
	Archiver *tracelog.Archiver
	// Guard runs before the event and trace-log routes, e.g. middleware.WebhookKey.
	Guard fiber.Handler
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/health", HealthCheck(deps.DB))
	app.Get("/healthz", LivenessProbe())

	guard := deps.Guard
	if guard == nil {
		guard = middleware.Noop()
	}

	events := app.Group("/events", guard)
	events.Post("/create", HandleEvent(deps.Create, deps.Archiver, "create"))
	events.Post("/update", HandleEvent(deps.Update, deps.Archiver, "update"))

	traceLogs := app.Group("/trace-logs", guard)
	traceLogs.Get("/:correlation_id/:operation", GetTraceLog(deps.Archiver))
	traceLogs.Delete("/:correlation_id/:operation", DeleteTraceLog(deps.Archiver))
}
