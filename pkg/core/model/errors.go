package model

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrMalformedOverride    = errors.New("malformed crew override")
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrOrphanedSubstitution = errors.New("orphaned substitution")
	ErrInvalidSeatMap       = errors.New("invalid seat map")
)
