package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"terminaltime/internal/config"
	"terminaltime/internal/db"
	"terminaltime/internal/ephemeris"
)

// EphemeridesHandler serves the daily fact endpoints.
type EphemeridesHandler struct {
	resolver *ephemeris.Resolver
	db       *db.DB // nil when no store is configured
	cfg      *config.Config
}

// NewEphemeridesHandler creates a new ephemerides handler.
func NewEphemeridesHandler(resolver *ephemeris.Resolver, database *db.DB, cfg *config.Config) *EphemeridesHandler {
	return &EphemeridesHandler{resolver: resolver, db: database, cfg: cfg}
}

// Today returns the fact record for today. Query flags:
// fallback=true skips generation and returns curated data immediately,
// force=true skips the store lookup and always regenerates.
// Every expected failure degrades inside the resolver; this handler only
// fails on truly unexpected faults (handled by the recover middleware).
func (h *EphemeridesHandler) Today(c fiber.Ctx) error {
	opts := ephemeris.Options{
		ForceFallback: c.Query("fallback") == "true",
		ForceGenerate: c.Query("force") == "true",
	}

	rec, source := h.resolver.Resolve(c.Context(), opts)
	c.Set("X-Ephemeride-Source", source)
	return c.JSON(rec)
}

// GenerateDaily is the idempotent trigger intended for scheduled invocation.
// Unlike Today, persistence is mandatory here: without a store the endpoint
// reports 503.
func (h *EphemeridesHandler) GenerateDaily(c fiber.Ctx) error {
	rec, created, err := h.resolver.GenerateDaily(c.Context())
	if err != nil {
		if errors.Is(err, ephemeris.ErrStoreUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"error":   "fact store not configured",
			})
		}
		slog.Error("daily generation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "daily generation failed",
		})
	}

	message := "ephemeride already exists for today"
	if created {
		message = "ephemeride generated successfully"
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    message,
		"created":    created,
		"date":       rec.Date,
		"ephemeride": rec,
	})
}

// Debug returns a diagnostic snapshot of the store and clock state.
func (h *EphemeridesHandler) Debug(c fiber.Ctx) error {
	now := h.resolver.Today()
	today := now.Format("2006-01-02")

	payload := fiber.Map{
		"status": "ok",
		"currentTime": fiber.Map{
			"iso":      time.Now().UTC().Format(time.RFC3339),
			"today":    today,
			"timezone": h.cfg.Timezone,
		},
		"config": fiber.Map{
			"storeConfigured":     h.cfg.HasStore(),
			"generatorConfigured": h.cfg.HasGenerator(),
		},
	}

	if h.db == nil {
		payload["database"] = fiber.Map{"available": false}
		return c.JSON(payload)
	}

	dbInfo := fiber.Map{"available": true}

	if count, err := h.db.CountEphemerides(c.Context()); err == nil {
		dbInfo["totalCount"] = count
	} else {
		dbInfo["countError"] = err.Error()
	}

	if rec, err := h.db.GetEphemerideByDate(c.Context(), today); err == nil {
		dbInfo["todayExists"] = true
		dbInfo["todayData"] = rec
	} else {
		dbInfo["todayExists"] = false
		if !errors.Is(err, db.ErrEphemerideNotFound) {
			dbInfo["todayError"] = err.Error()
		}
	}

	since := now.AddDate(0, 0, -h.cfg.RecencyWindowDays).Format("2006-01-02")
	if recent, err := h.db.GetEphemeridesSince(c.Context(), since); err == nil {
		dbInfo["recentEphemerides"] = recent
	} else {
		dbInfo["recentError"] = err.Error()
	}

	payload["database"] = dbInfo
	return c.JSON(payload)
}
