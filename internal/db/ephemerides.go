package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"terminaltime/internal/models"
)

// dateFormat is the wire format for the date business key.
const dateFormat = "2006-01-02"

// ephemerideColumns is the standard column list for ephemeride queries.
const ephemerideColumns = `id, date, title, description, year, category, created_at`

// scanEphemeride scans a row into an Ephemeride struct.
func scanEphemeride(row pgx.Row) (*models.Ephemeride, error) {
	var e models.Ephemeride
	var date time.Time
	err := row.Scan(
		&e.ID,
		&date,
		&e.Title,
		&e.Description,
		&e.Year,
		&e.Category,
		&e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEphemerideNotFound
	}
	if err != nil {
		return nil, err
	}
	e.Date = date.Format(dateFormat)
	return &e, nil
}

// GetEphemerideByDate returns the single record stored for the given date,
// or ErrEphemerideNotFound.
func (d *DB) GetEphemerideByDate(ctx context.Context, date string) (*models.Ephemeride, error) {
	query := `SELECT ` + ephemerideColumns + ` FROM ephemerides WHERE date = $1`
	return scanEphemeride(d.Pool.QueryRow(ctx, query, date))
}

// GetEphemeridesSince returns all records with date >= since (inclusive),
// newest first. Used to build the recency avoidance list.
func (d *DB) GetEphemeridesSince(ctx context.Context, since string) ([]models.Ephemeride, error) {
	query := `SELECT ` + ephemerideColumns + ` FROM ephemerides WHERE date >= $1 ORDER BY date DESC`

	rows, err := d.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ephemerides []models.Ephemeride
	for rows.Next() {
		var e models.Ephemeride
		var date time.Time
		if err := rows.Scan(
			&e.ID,
			&date,
			&e.Title,
			&e.Description,
			&e.Year,
			&e.Category,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Date = date.Format(dateFormat)
		ephemerides = append(ephemerides, e)
	}

	return ephemerides, rows.Err()
}

// UpsertEphemeride inserts a record keyed by date, replacing any existing row
// for that date. The date-key conflict resolution is the only mechanism
// preventing duplicate per-date records under concurrent requests.
func (d *DB) UpsertEphemeride(ctx context.Context, e *models.Ephemeride) error {
	query := `
		INSERT INTO ephemerides (id, date, title, description, year, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (date) DO UPDATE SET
			id = EXCLUDED.id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			year = EXCLUDED.year,
			category = EXCLUDED.category,
			created_at = EXCLUDED.created_at
	`

	_, err := d.Pool.Exec(ctx, query,
		e.ID,
		e.Date,
		e.Title,
		e.Description,
		e.Year,
		e.Category,
		e.CreatedAt,
	)
	return err
}

// CountEphemerides returns the total number of stored records.
func (d *DB) CountEphemerides(ctx context.Context) (int64, error) {
	var count int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM ephemerides`).Scan(&count)
	return count, err
}
