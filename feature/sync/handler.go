package sync

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/marvalsa/Integration-Web-Site/core/logger"
	"github.com/marvalsa/Integration-Web-Site/core/report"
)

// Runner is the service surface the handler depends on.
type Runner interface {
	RunAll(ctx context.Context) *report.Batch
	RunTask(ctx context.Context, key string) (*report.Report, error)
	TaskKeys() []string
	Health(ctx context.Context) (time.Time, error)
}

// Handler handles HTTP requests for the sync feature.
type Handler struct {
	service Runner
	logger  *zap.Logger
	name    string
	version string
}

// NewHandler creates a new HTTP handler.
func NewHandler(service Runner, log *zap.Logger, name, version string) *Handler {
	return &Handler{service: service, logger: log, name: name, version: version}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandleInfo)
	app.Get("/health", h.HandleHealth)
	app.Post("/sync", h.HandleSyncAll)
	app.Post("/sync/:task", h.HandleSyncTask)
}

// HandleInfo returns the service identity.
func (h *Handler) HandleInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"nombre":  h.name,
		"version": h.version,
	})
}

// HandleHealth pings the database and reports its clock.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	now, err := h.service.Health(c.Context())
	if err != nil {
		l.Error("health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":        "healthy",
		"database_time": now,
	})
}

// HandleSyncAll runs the full batch and returns the aggregate report. The
// response is 200 even when individual tasks failed; the report carries the
// per-task outcomes.
func (h *Handler) HandleSyncAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("full sync requested")

	batch := h.service.RunAll(c.Context())
	return c.JSON(batch)
}

// HandleSyncTask runs one task by key.
func (h *Handler) HandleSyncTask(c *fiber.Ctx) error {
	key := c.Params("task")
	l := logger.WithRayID(h.logger, c).With(zap.String("task", key))
	l.Info("single task sync requested")

	rep, err := h.service.RunTask(c.Context(), key)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
			"tasks": h.service.TaskKeys(),
		})
	}
	return c.JSON(rep)
}
