package handlers

import (
	"github.com/gofiber/fiber/v3"

	"terminaltime/internal/config"
	"terminaltime/internal/ephemeris"
)

// DashboardHandler renders the server-side terminal dashboard page.
type DashboardHandler struct {
	resolver *ephemeris.Resolver
	cfg      *config.Config
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(resolver *ephemeris.Resolver, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{resolver: resolver, cfg: cfg}
}

// Index shows today's ephemeride in a terminal-styled page.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	rec, source := h.resolver.Resolve(c.Context(), ephemeris.Options{})

	return c.Render("index", fiber.Map{
		"Title":      h.cfg.SiteTitle,
		"SiteTitle":  h.cfg.SiteTitle,
		"Ephemeride": rec,
		"Source":     source,
	})
}
