// Package ephemeris resolves the daily "on this day in programming" fact.
//
// Resolution order: stored record for today, freshly generated record,
// curated fallback table. Every expected collaborator failure degrades to the
// next step in the chain; the caller always gets a record.
package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"terminaltime/internal/db"
	"terminaltime/internal/generator"
	"terminaltime/internal/metrics"
	"terminaltime/internal/models"
)

// ErrStoreUnavailable is returned by GenerateDaily when no fact store is
// configured; the scheduled trigger cannot do its job without persistence.
var ErrStoreUnavailable = errors.New("fact store not configured")

// Store is the date-keyed fact store. Implemented by *db.DB.
type Store interface {
	GetEphemerideByDate(ctx context.Context, date string) (*models.Ephemeride, error)
	GetEphemeridesSince(ctx context.Context, since string) ([]models.Ephemeride, error)
	UpsertEphemeride(ctx context.Context, e *models.Ephemeride) error
}

// Generator synthesizes a new fact for a date. Implemented by *generator.Client.
type Generator interface {
	GenerateFact(ctx context.Context, day time.Time, avoid []generator.Avoid) (*generator.Fact, error)
}

// Options are the caller-supplied resolution flags.
type Options struct {
	// ForceFallback skips generation and the store, returning curated data.
	ForceFallback bool
	// ForceGenerate skips the store lookup and always attempts regeneration.
	ForceGenerate bool
}

// ResolverConfig wires the resolver's collaborators and knobs.
type ResolverConfig struct {
	Store     Store // nil when no store is configured
	Generator Generator
	Table     *CuratedTable
	Location  *time.Location

	RecencyWindowDays int           // avoidance window; default 7
	CallTimeout       time.Duration // per external call; default 15s
	Logger            *slog.Logger
	Now               func() time.Time // test hook; defaults to time.Now
}

// Resolver produces exactly one fact record for "today".
type Resolver struct {
	store       Store
	gen         Generator
	table       *CuratedTable
	loc         *time.Location
	window      int
	callTimeout time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// NewResolver builds a resolver. Collaborator handles are constructed once at
// process start and injected here; the resolver never reads the environment.
func NewResolver(cfg ResolverConfig) *Resolver {
	r := &Resolver{
		store:       cfg.Store,
		gen:         cfg.Generator,
		table:       cfg.Table,
		loc:         cfg.Location,
		window:      cfg.RecencyWindowDays,
		callTimeout: cfg.CallTimeout,
		logger:      cfg.Logger,
		now:         cfg.Now,
	}
	if r.table == nil {
		r.table = NewCuratedTable(nil)
	}
	if r.loc == nil {
		r.loc = time.UTC
	}
	if r.window <= 0 {
		r.window = 7
	}
	if r.callTimeout <= 0 {
		r.callTimeout = 15 * time.Second
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Today returns the current date in the reference time zone.
func (r *Resolver) Today() time.Time {
	return r.now().In(r.loc)
}

// Resolve produces the fact record for today. It never fails: every expected
// collaborator failure is caught locally and control falls through to the
// next step. The returned source names the code path that produced the
// record (store, generated, curated, random).
func (r *Resolver) Resolve(ctx context.Context, opts Options) (*models.Ephemeride, string) {
	now := r.Today()
	today := now.Format("2006-01-02")

	if opts.ForceFallback {
		rec, source := r.table.ForDate(now)
		metrics.RecordResolution(source)
		return rec, source
	}

	if r.store != nil && !opts.ForceGenerate {
		lookupCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
		rec, err := r.store.GetEphemerideByDate(lookupCtx, today)
		cancel()
		if err == nil {
			metrics.RecordResolution(models.SourceStore)
			return rec, models.SourceStore
		}
		if !errors.Is(err, db.ErrEphemerideNotFound) {
			r.logger.Warn("store lookup failed, continuing with generation", "date", today, "error", err)
		}
	}

	rec, err := r.generate(ctx, now, "generated")
	if err == nil {
		r.persistAsync(rec)
		metrics.RecordResolution(models.SourceGenerated)
		return rec, models.SourceGenerated
	}
	r.logger.Warn("generation failed, using curated fallback", "date", today, "error", err)

	rec, source := r.table.ForDate(now)
	metrics.RecordResolution(source)
	return rec, source
}

// GenerateDaily is the idempotent scheduled-trigger path: it checks for an
// existing today-record, generates one if missing, and persists it
// synchronously. Returns the record and whether a new one was created.
func (r *Resolver) GenerateDaily(ctx context.Context) (*models.Ephemeride, bool, error) {
	if r.store == nil {
		return nil, false, ErrStoreUnavailable
	}

	now := r.Today()
	today := now.Format("2006-01-02")

	lookupCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	existing, err := r.store.GetEphemerideByDate(lookupCtx, today)
	cancel()
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, db.ErrEphemerideNotFound) {
		return nil, false, fmt.Errorf("store lookup: %w", err)
	}

	rec, err := r.generate(ctx, now, "daily")
	if err != nil {
		return nil, false, fmt.Errorf("generate: %w", err)
	}

	saveCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()
	if err := r.store.UpsertEphemeride(saveCtx, rec); err != nil {
		return nil, false, fmt.Errorf("persist: %w", err)
	}

	return rec, true, nil
}

// generate queries the recency index, invokes the generator and builds a
// fresh record. The recency query failing is non-fatal; generation failing
// is returned to the caller.
func (r *Resolver) generate(ctx context.Context, now time.Time, idPrefix string) (*models.Ephemeride, error) {
	if r.gen == nil {
		return nil, generator.ErrNotConfigured
	}

	avoid := r.recentTopics(ctx, now)

	genCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	start := time.Now()
	fact, err := r.gen.GenerateFact(genCtx, now, avoid)
	metrics.ObserveGeneratorDuration(time.Since(start))
	if err != nil {
		return nil, err
	}

	return &models.Ephemeride{
		ID:          fmt.Sprintf("%s-%s", idPrefix, uuid.NewString()),
		Date:        now.Format("2006-01-02"),
		Title:       fact.Title,
		Description: fact.Description,
		Year:        fact.Year,
		Category:    fact.Category,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// recentTopics builds the avoidance list from records of the last window
// days (inclusive boundary). Failure here is non-fatal.
func (r *Resolver) recentTopics(ctx context.Context, now time.Time) []generator.Avoid {
	if r.store == nil {
		return nil
	}

	since := now.AddDate(0, 0, -r.window).Format("2006-01-02")

	queryCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	recent, err := r.store.GetEphemeridesSince(queryCtx, since)
	if err != nil {
		r.logger.Warn("recency query failed, proceeding without avoidance list", "since", since, "error", err)
		return nil
	}

	avoid := make([]generator.Avoid, 0, len(recent))
	for _, e := range recent {
		avoid = append(avoid, generator.Avoid{Title: e.Title, Year: e.Year})
	}
	return avoid
}

// persistAsync schedules a best-effort write-back of a generated record.
// The write runs detached from the request: its outcome is observed only via
// logs, never via the response, and in-flight writes may be lost on process
// termination.
func (r *Resolver) persistAsync(rec *models.Ephemeride) {
	if r.store == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.callTimeout)
		defer cancel()
		if err := r.store.UpsertEphemeride(ctx, rec); err != nil {
			r.logger.Error("failed to persist generated ephemeride", "date", rec.Date, "error", err)
		}
	}()
}
