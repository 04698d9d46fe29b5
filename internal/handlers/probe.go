package handlers

import (
	"github.com/gofiber/fiber/v3"

	"terminaltime/internal/db"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	db *db.DB // nil when the service runs storeless
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(database *db.DB) *ProbeHandler {
	return &ProbeHandler{db: database}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// A storeless deployment is still ready: the curated fallback table serves
// every request. With a store configured, the database must be reachable.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if h.db == nil {
		return c.JSON(fiber.Map{
			"status": "ok",
			"store":  "not configured",
		})
	}

	if err := h.db.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
