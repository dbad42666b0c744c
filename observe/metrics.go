package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records execution metrics for platform calls.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records one platform call with its transport, duration and
	// error status.
	RecordCall(ctx context.Context, endpoint, transport string, duration time.Duration, err error)

	// RecordRetry records one recovery attempt for the named operation.
	RecordRetry(ctx context.Context, op string)

	// RecordCacheLookup records a validation-cache lookup outcome.
	RecordCacheLookup(ctx context.Context, hit bool)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	retryCount   metric.Int64Counter
	cacheLookups metric.Int64Counter
}

// NewMetrics creates a Metrics instance on the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"platform.call.total",
		metric.WithDescription("Total number of platform calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"platform.call.errors",
		metric.WithDescription("Total number of failed platform calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"platform.call.duration_ms",
		metric.WithDescription("Platform call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	retryCount, err := meter.Int64Counter(
		"platform.retry.attempts",
		metric.WithDescription("Total number of recovery attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter(
		"validation.cache.lookups",
		metric.WithDescription("Validation cache lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		retryCount:   retryCount,
		cacheLookups: cacheLookups,
	}, nil
}

func (m *metricsImpl) RecordCall(ctx context.Context, endpoint, transport string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("call.endpoint", endpoint),
		attribute.String("call.transport", transport),
	)

	m.totalCount.Add(ctx, 1, attrs)
	m.durationHist.Record(ctx, float64(duration)/float64(time.Millisecond), attrs)
	if err != nil {
		m.errorCount.Add(ctx, 1, attrs)
	}
}

func (m *metricsImpl) RecordRetry(ctx context.Context, op string) {
	m.retryCount.Add(ctx, 1, metric.WithAttributes(attribute.String("call.op", op)))
}

func (m *metricsImpl) RecordCacheLookup(ctx context.Context, hit bool) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("cache.hit", hit)))
}

// noopMetrics discards everything.
type noopMetrics struct{}

func (noopMetrics) RecordCall(context.Context, string, string, time.Duration, error) {}
func (noopMetrics) RecordRetry(context.Context, string)                              {}
func (noopMetrics) RecordCacheLookup(context.Context, bool)                          {}

// NopMetrics returns a Metrics that discards everything.
func NopMetrics() Metrics {
	return noopMetrics{}
}

// Ensure implementations satisfy Metrics.
var (
	_ Metrics = (*metricsImpl)(nil)
	_ Metrics = noopMetrics{}
)
