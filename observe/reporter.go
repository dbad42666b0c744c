package observe

import (
	"context"
)

// Reporter is the error-reporting collaborator for the execution core.
// The resilience package feeds it one observation per non-final failed
// attempt; the transport package feeds it external-call failures.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: reporting is best-effort and must not panic; it never alters
//   the error being reported.
type Reporter interface {
	// ReportRecovery records that attempt (1-based) of op failed with err
	// and a retry will follow. maxAttempts is the total budget.
	ReportRecovery(ctx context.Context, op string, attempt, maxAttempts int, err error)

	// ReportError records an external-call failure for op.
	ReportError(ctx context.Context, op string, err error)
}

// reporter logs observations; recovery observations also bump the retry
// counter. Call totals, errors and durations are recorded by the
// transport router's own metrics sink, not here, so a reported failure
// is never double-counted.
type reporter struct {
	logger  Logger
	metrics Metrics
}

// NewReporter creates a Reporter backed by the given logger and metrics.
// Either may be nil; nil collaborators are skipped.
func NewReporter(logger Logger, metrics Metrics) Reporter {
	if logger == nil {
		logger = NopLogger()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	return &reporter{logger: logger, metrics: metrics}
}

func (r *reporter) ReportRecovery(ctx context.Context, op string, attempt, maxAttempts int, err error) {
	r.logger.Warn(ctx, "attempt failed, retrying",
		Field{Key: "op", Value: op},
		Field{Key: "attempt", Value: attempt},
		Field{Key: "max_attempts", Value: maxAttempts},
		Field{Key: "error", Value: err.Error()},
	)
	r.metrics.RecordRetry(ctx, op)
}

func (r *reporter) ReportError(ctx context.Context, op string, err error) {
	r.logger.Error(ctx, "external call failed",
		Field{Key: "op", Value: op},
		Field{Key: "error", Value: err.Error()},
	)
}

// nopReporter discards everything.
type nopReporter struct{}

func (nopReporter) ReportRecovery(context.Context, string, int, int, error) {}
func (nopReporter) ReportError(context.Context, string, error)              {}

// NopReporter returns a Reporter that discards everything.
func NopReporter() Reporter {
	return nopReporter{}
}

// Ensure implementations satisfy Reporter.
var (
	_ Reporter = (*reporter)(nil)
	_ Reporter = nopReporter{}
)
