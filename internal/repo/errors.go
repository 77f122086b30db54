package repo

import "errors"

var (
	// ErrNoRows is returned by lookups and updates that match nothing,
	// whatever the backing driver.
	ErrNoRows = errors.New("no rows in result set")
	// ErrUniqueViolation is returned when an insert hits a unique index.
	ErrUniqueViolation = errors.New("unique constraint violated")
)
