package resilience

import "errors"

// Sentinel errors for resilience operations.
var (
	// ErrTimeout is returned when an operation loses its timeout race.
	// The underlying operation may still be running.
	ErrTimeout = errors.New("resilience: operation timed out")
)
