package jobs

import (
	"context"
	"log/slog"
	"time"

	"terminaltime/internal/ephemeris"
)

// DailyGenerator periodically ensures a persisted ephemeride exists for the
// current date, so the first visitor of the day never waits on the LLM.
type DailyGenerator struct {
	resolver *ephemeris.Resolver
	interval time.Duration
}

// NewDailyGenerator creates a daily generator job.
func NewDailyGenerator(resolver *ephemeris.Resolver, interval time.Duration) *DailyGenerator {
	if interval <= 0 {
		interval = time.Hour
	}
	return &DailyGenerator{
		resolver: resolver,
		interval: interval,
	}
}

// Start begins the generation loop. Runs once immediately, then on every
// tick until the context is cancelled. GenerateDaily is idempotent, so a
// short interval only costs a store lookup on days that are already covered.
func (g *DailyGenerator) Start(ctx context.Context) {
	slog.Info("starting daily generator job", "interval", g.interval)

	g.run(ctx)

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("daily generator job stopped")
			return
		case <-ticker.C:
			g.run(ctx)
		}
	}
}

func (g *DailyGenerator) run(ctx context.Context) {
	rec, created, err := g.resolver.GenerateDaily(ctx)
	if err != nil {
		slog.Error("daily generation run failed", "error", err)
		return
	}
	if created {
		slog.Info("daily ephemeride generated", "date", rec.Date, "title", rec.Title)
	}
}
