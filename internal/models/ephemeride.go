package models

import "time"

// Ephemeride is a single date-keyed "on this day in programming" fact.
// At most one record exists per calendar date in the store; the date is
// the natural key, the id is an opaque origin-prefixed identifier.
type Ephemeride struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Year        int       `json:"year"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// Resolution sources, used for metrics labels and the debug endpoint.
const (
	SourceStore     = "store"
	SourceGenerated = "generated"
	SourceCurated   = "curated"
	SourceRandom    = "random"
)
