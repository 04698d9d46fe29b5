package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"terminaltime/internal/trending"
)

// TrendingHandler proxies trending GitHub repositories.
type TrendingHandler struct {
	client *trending.Client
}

// NewTrendingHandler creates a new trending handler.
func NewTrendingHandler(client *trending.Client) *TrendingHandler {
	return &TrendingHandler{client: client}
}

// Top returns trending repositories, with a static list when GitHub is
// unreachable.
func (h *TrendingHandler) Top(c fiber.Ctx) error {
	repos, err := h.client.Top(c.Context())
	if err != nil {
		slog.Warn("github trending failed, serving fallback", "error", err)
		return c.JSON(fiber.Map{"projects": trending.Fallback(time.Now())})
	}

	return c.JSON(fiber.Map{"projects": repos})
}
