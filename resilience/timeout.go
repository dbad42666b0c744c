package resilience

import (
	"context"
	"time"
)

// TimeoutConfig configures the timeout race.
type TimeoutConfig struct {
	// Timeout is the maximum time to wait for the operation.
	// Default: 30 seconds
	Timeout time.Duration
}

// Timeout races operations against a timer.
//
// Unlike context.WithTimeout, the losing operation is not cancelled: it
// keeps running with the caller's original context and its eventual
// outcome is discarded. A timed-out write may therefore still land.
type Timeout struct {
	config TimeoutConfig
}

// NewTimeout creates a new timeout wrapper.
func NewTimeout(config TimeoutConfig) *Timeout {
	// Apply defaults
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Timeout{config: config}
}

// Execute runs op and returns its error, or ErrTimeout if the timer
// elapses first. op continues in the background after a timeout; the
// buffered channel lets it finish without leaking a goroutine.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	done := make(chan error, 1)

	go func() {
		done <- op(ctx)
	}()

	timer := time.NewTimer(t.config.Timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTimeout
	}
}

// Config returns the timeout configuration.
func (t *Timeout) Config() TimeoutConfig {
	return t.config
}

// ExecuteWithTimeout is a convenience function to race a single operation
// against a timeout.
func ExecuteWithTimeout(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	t := NewTimeout(TimeoutConfig{Timeout: timeout})
	return t.Execute(ctx, op)
}
