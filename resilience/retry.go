package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// DefaultMaxAttempts is the process-wide retry budget applied when a
// RetryConfig does not set one.
const DefaultMaxAttempts = 3

// Reporter receives one structured observation per non-final failed
// attempt. Implementations must not panic; reporting is best-effort.
type Reporter interface {
	// ReportRecovery records that attempt (1-based) of op failed with err
	// and a retry will follow. maxAttempts is the total budget.
	ReportRecovery(ctx context.Context, op string, attempt, maxAttempts int, err error)
}

// RetryConfig configures the retry behavior.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the first).
	// Default: DefaultMaxAttempts. 1 means a single attempt, no retry.
	MaxAttempts int

	// InitialDelay is the base delay before the first retry.
	// Default: 200ms
	InitialDelay time.Duration

	// MaxDelay caps the delay between attempts.
	// Default: 30s
	MaxDelay time.Duration

	// Multiplier is the exponential backoff multiplier.
	// Default: 2.0
	Multiplier float64

	// Jitter adds up to 25% randomness to each delay so that many callers
	// retrying at once do not do so in lock-step.
	// Default (via DefaultRetryConfig): true
	Jitter bool

	// RetryIf classifies errors as retryable. The default treats every
	// non-nil error as retryable, matching the invoker's contract; install
	// a classifier to stop retrying errors that cannot be transient.
	RetryIf func(err error) bool

	// Reporter receives recovery-attempt observations. Nil disables them.
	Reporter Reporter
}

// DefaultRetryConfig returns the process-wide default retry policy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// Retry re-attempts failed operations with backoff.
type Retry struct {
	config RetryConfig
}

// NewRetry creates a new retry handler.
func NewRetry(config RetryConfig) *Retry {
	// Apply defaults
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 200 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 30 * time.Second
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}
	if config.RetryIf == nil {
		config.RetryIf = func(err error) bool { return err != nil }
	}

	return &Retry{config: config}
}

// Execute runs op up to MaxAttempts times, sequentially. op is named for
// observations only. The error returned after the budget is exhausted is
// the final attempt's error, not wrapped.
func (r *Retry) Execute(ctx context.Context, op string, fn func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !r.config.RetryIf(err) {
			return err
		}
		if attempt >= r.config.MaxAttempts {
			break
		}

		if r.config.Reporter != nil {
			r.config.Reporter.ReportRecovery(ctx, op, attempt, r.config.MaxAttempts, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.Delay(attempt)):
		}
	}

	return lastErr
}

// Delay returns the sleep before the retry following the given attempt
// (1-based). It is a pure function of the attempt index plus bounded
// randomness: the deterministic component grows exponentially and is
// capped at MaxDelay, the jitter adds at most 25% on top.
func (r *Retry) Delay(attempt int) time.Duration {
	delay := r.BaseDelay(attempt)

	if r.config.Jitter && delay > 0 {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay += time.Duration(rand.Int64N(int64(delay/4) + 1))
	}
	if delay > r.config.MaxDelay {
		delay = r.config.MaxDelay
	}
	return delay
}

// BaseDelay returns the deterministic backoff component for the given
// attempt index. Non-decreasing in attempt, bounded by MaxDelay, and safe
// for arbitrarily large attempt indices.
func (r *Retry) BaseDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	// Clamp the exponent so math.Pow cannot overflow float64 into a
	// nonsensical sleep for large attempt indices.
	exp := float64(attempt - 1)
	if exp > 63 {
		exp = 63
	}

	delay := float64(r.config.InitialDelay) * math.Pow(r.config.Multiplier, exp)
	if delay < 0 || delay > float64(r.config.MaxDelay) || math.IsInf(delay, 1) {
		return r.config.MaxDelay
	}
	return time.Duration(delay)
}

// Config returns the retry configuration.
func (r *Retry) Config() RetryConfig {
	return r.config
}
