package db

import "errors"

// Domain-level database error sentinels.
var (
	// Ephemeride errors
	ErrEphemerideNotFound = errors.New("ephemeride not found")
)
