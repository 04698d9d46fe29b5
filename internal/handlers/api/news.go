package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"terminaltime/internal/news"
)

// NewsHandler proxies technology headlines.
type NewsHandler struct {
	client  *news.Client
	scraper *news.HackerNewsScraper
}

// NewNewsHandler creates a new news handler.
func NewNewsHandler(client *news.Client, scraper *news.HackerNewsScraper) *NewsHandler {
	return &NewsHandler{client: client, scraper: scraper}
}

// Tech returns recent technology articles: NewsAPI first, Hacker News scrape
// when the API is unconfigured or failing.
func (h *NewsHandler) Tech(c fiber.Ctx) error {
	articles, err := h.client.TechHeadlines(c.Context())
	if err == nil {
		return c.JSON(fiber.Map{"articles": articles})
	}
	if !errors.Is(err, news.ErrNotConfigured) {
		slog.Warn("news api failed, falling back to hacker news", "error", err)
	}

	articles, err = h.scraper.TopStories(c.Context())
	if err != nil {
		slog.Error("news fallback failed", "error", err)
		return jsonError(c, fiber.StatusBadGateway, "failed to fetch news")
	}

	return c.JSON(fiber.Map{"articles": articles})
}
