package timeseries

import "errors"

// Sentinel errors shared across the analytical packages. Transforms wrap
// these with context via fmt.Errorf and %w so callers can classify failures
// with errors.Is.
var (
	// ErrInsufficientData indicates the input series is shorter than the
	// minimum required by a transform.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter indicates a configuration value violates its
	// constraints (window not odd, negative length, fraction out of range).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNoOverlap indicates two series share no aligned timestamps after
	// tolerance-bounded reindexing.
	ErrNoOverlap = errors.New("no overlapping timestamps")
)
