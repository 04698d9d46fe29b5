package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"terminaltime/internal/config"
	"terminaltime/internal/db"
	"terminaltime/internal/ephemeris"
	"terminaltime/internal/generator"
	"terminaltime/internal/jobs"
	"terminaltime/internal/metrics"
	"terminaltime/internal/news"
	"terminaltime/internal/server"
	"terminaltime/internal/trending"
	"terminaltime/internal/weather"
)

func main() {
	// Structured logging to stdout
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		slog.Error("failed to load yaml config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the fact store. A missing or unreachable database is not
	// fatal: the resolver degrades to generation and the curated table.
	var database *db.DB
	if cfg.HasStore() {
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Warn("fact store unavailable, running storeless", "error", err)
			database = nil
		} else {
			defer database.Close()
			if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
				slog.Error("failed to run migrations", "error", err)
				os.Exit(1)
			}
		}
	} else {
		slog.Warn("DATABASE_URL not set, running storeless")
	}

	// Initialize metrics
	metrics.Init(database)

	// External clients
	var gen ephemeris.Generator
	if cfg.HasGenerator() {
		gen = generator.New(generator.Config{
			Endpoint:            cfg.GeneratorEndpoint,
			Model:               cfg.GeneratorModel,
			APIKey:              cfg.GeneratorAPIKey,
			DescriptionMinChars: cfg.DescriptionMinChars,
			DescriptionMaxChars: cfg.DescriptionMaxChars,
		})
	} else {
		slog.Warn("GENERATOR_API_KEY not set, serving curated facts only")
	}

	weatherClient := weather.New(weather.Config{})
	newsClient := news.New(news.Config{APIKey: cfg.NewsAPIKey})
	hackerNews := news.NewHackerNewsScraper("")
	trendingClient := trending.New(trending.Config{})

	var cities []config.CityConfig
	var overrides []config.EphemerideConfig
	if yamlCfg != nil {
		cities = yamlCfg.Cities
		overrides = yamlCfg.Ephemerides
	}

	var store ephemeris.Store
	if database != nil {
		store = database
	}

	resolver := ephemeris.NewResolver(ephemeris.ResolverConfig{
		Store:             store,
		Generator:         gen,
		Table:             ephemeris.NewCuratedTable(overrides),
		Location:          cfg.Location(),
		RecencyWindowDays: cfg.RecencyWindowDays,
	})

	// Create server and register routes
	srv := server.New(cfg)
	srv.RegisterRoutes(server.Deps{
		DB:         database,
		Resolver:   resolver,
		Weather:    weatherClient,
		News:       newsClient,
		HackerNews: hackerNews,
		Trending:   trendingClient,
		Cities:     cities,
	})

	// Background daily generation needs both a store and a generator
	if database != nil && gen != nil && cfg.DailyGenerateInterval > 0 {
		go jobs.NewDailyGenerator(resolver, cfg.DailyGenerateInterval).Start(ctx)
	}

	// Start server in a goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr, "env", cfg.Env)
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	cancel()

	if err := srv.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Give in-flight writes a moment to land
	time.Sleep(100 * time.Millisecond)
	slog.Info("server stopped")
}
