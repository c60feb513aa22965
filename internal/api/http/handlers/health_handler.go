package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/persistence"
)

// HealthHandler responds to liveness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres}
}

// Root handles GET /.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": h.serviceName + " is running",
		"version": h.version,
		"status":  "healthy",
	})
}

// Health handles GET /health, reporting database connectivity.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	database := "connected"
	status := "healthy"
	if err := h.postgres.Ping(ctx); err != nil {
		database = err.Error()
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":   status,
		"database": database,
	})
}
