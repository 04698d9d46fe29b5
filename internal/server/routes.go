package server

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cache"
	"github.com/gofiber/storage/redis/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"terminaltime/internal/config"
	"terminaltime/internal/db"
	"terminaltime/internal/ephemeris"
	"terminaltime/internal/handlers"
	"terminaltime/internal/handlers/api"
	"terminaltime/internal/news"
	"terminaltime/internal/trending"
	"terminaltime/internal/weather"
)

// Deps collects the collaborators the route handlers need.
type Deps struct {
	DB         *db.DB // nil when running storeless
	Resolver   *ephemeris.Resolver
	Weather    *weather.Client
	News       *news.Client
	HackerNews *news.HackerNewsScraper
	Trending   *trending.Client
	Cities     []config.CityConfig
}

// RegisterRoutes sets up all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	dashboardHandler := handlers.NewDashboardHandler(deps.Resolver, s.Cfg)
	probeHandler := handlers.NewProbeHandler(deps.DB)
	ephemeridesHandler := api.NewEphemeridesHandler(deps.Resolver, deps.DB, s.Cfg)
	weatherHandler := api.NewWeatherHandler(deps.Weather, deps.Cities)
	newsHandler := api.NewNewsHandler(deps.News, deps.HackerNews)
	trendingHandler := api.NewTrendingHandler(deps.Trending)

	proxyCache := s.proxyCache()

	// Dashboard
	s.App.Get("/", dashboardHandler.Index)

	// Ephemerides API
	s.App.Get("/api/ephemerides/today", ephemeridesHandler.Today)
	s.App.Get("/api/ephemerides/generate-daily", ephemeridesHandler.GenerateDaily)
	s.App.Get("/api/debug/ephemerides", ephemeridesHandler.Debug)

	// Proxy API, cached: upstream rate limits are tighter than ours
	s.App.Get("/api/weather", weatherHandler.Current, proxyCache)
	s.App.Get("/api/weather/cities", weatherHandler.Cities)
	s.App.Get("/api/news/tech", newsHandler.Tech, proxyCache)
	s.App.Get("/api/github/trending", trendingHandler.Top, proxyCache)

	// Health probes for Kubernetes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	// Prometheus metrics endpoint
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// proxyCache builds the cache middleware for the upstream proxy endpoints.
// With REDIS_URL set the cache is shared between replicas; otherwise it
// falls back to Fiber's in-memory storage.
func (s *Server) proxyCache() fiber.Handler {
	cfg := cache.Config{
		Expiration: 5 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return strings.Clone(c.OriginalURL())
		},
	}

	if s.Cfg.RedisURL != "" {
		cfg.Storage = redis.New(redis.Config{URL: s.Cfg.RedisURL})
		slog.Info("proxy cache backed by redis")
	}

	return cache.New(cfg)
}
