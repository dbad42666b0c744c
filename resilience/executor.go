package resilience

import (
	"context"
	"time"
)

// Executor composes retry and timeout into one invocation wrapper.
type Executor struct {
	retry   *Retry
	timeout *Timeout
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates a new resilience executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithRetry adds retry logic to the executor.
func WithRetry(r *Retry) ExecutorOption {
	return func(e *Executor) {
		e.retry = r
	}
}

// WithTimeout adds a per-attempt timeout to the executor.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = NewTimeout(TimeoutConfig{Timeout: timeout})
	}
}

// WithTimeoutConfig adds a per-attempt timeout with custom config.
func WithTimeoutConfig(t *Timeout) ExecutorOption {
	return func(e *Executor) {
		e.timeout = t
	}
}

// Execute runs op through the configured patterns. The timeout is the
// innermost wrapper, so each retry attempt gets its own timeout budget
// and a timed-out attempt counts as a failed attempt.
func (e *Executor) Execute(ctx context.Context, op string, fn func(context.Context) error) error {
	execute := fn

	if e.timeout != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.timeout.Execute(ctx, inner)
		}
	}

	if e.retry != nil {
		return e.retry.Execute(ctx, op, execute)
	}
	return execute(ctx)
}
