package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/keepnetlabs/agentic-ally-agent-sub012/reqctx"
)

// DefaultErrorPrefix is used when the router is not configured with one.
const DefaultErrorPrefix = "platform call failed"

// Reporter receives external-call failures. Implementations must not
// panic; reporting is best-effort.
type Reporter interface {
	ReportError(ctx context.Context, op string, err error)
}

// Metrics receives one record per delivered call.
type Metrics interface {
	RecordCall(ctx context.Context, endpoint, transport string, duration time.Duration, err error)
}

// Router delivers targets over whichever transport is configured on them.
type Router struct {
	client      *http.Client
	reporter    Reporter
	metrics     Metrics
	tracer      trace.Tracer
	errorPrefix string
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithHTTPClient sets the client used for fallback-URL deliveries.
func WithHTTPClient(c *http.Client) RouterOption {
	return func(r *Router) {
		r.client = c
	}
}

// WithReporter sets the failure reporter.
func WithReporter(rep Reporter) RouterOption {
	return func(r *Router) {
		r.reporter = rep
	}
}

// WithMetrics sets the metrics sink fed one record per call.
func WithMetrics(m Metrics) RouterOption {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used to span each call.
func WithTracer(t trace.Tracer) RouterOption {
	return func(r *Router) {
		r.tracer = t
	}
}

// WithErrorPrefix sets the prefix carried by every CallError.
func WithErrorPrefix(prefix string) RouterOption {
	return func(r *Router) {
		r.errorPrefix = prefix
	}
}

// NewRouter creates a router.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		client:      &http.Client{Timeout: 30 * time.Second},
		tracer:      tracenoop.NewTracerProvider().Tracer("noop"),
		errorPrefix: DefaultErrorPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Call delivers the target and returns the parsed JSON response body.
//
// Routing is decided once, upfront: a supplied binding is used directly,
// otherwise the payload is POSTed to the fallback URL. Exactly one of the
// two happens per call. Failures are reported and returned as *CallError;
// no retrying happens here. Every delivered call is recorded on the
// metrics sink with its transport, duration and error status.
func (r *Router) Call(ctx context.Context, target Target) (raw json.RawMessage, err error) {
	if target.Binding == nil && target.FallbackURL == "" {
		return nil, ErrNoTarget
	}

	body, err := json.Marshal(target.Payload)
	if err != nil {
		return nil, fmt.Errorf("transport: encode payload: %w", err)
	}

	header := make(http.Header, 3)
	header.Set("Content-Type", "application/json")
	if target.Token != "" {
		header.Set("Authorization", "Bearer "+target.Token)
	}
	if cid := reqctx.CorrelationIDFromContext(ctx); cid != "" {
		header.Set("X-Correlation-ID", cid)
	}

	kind := "fallback"
	if target.Binding != nil {
		kind = "binding"
	}

	ctx, span := r.tracer.Start(ctx, "platform.call "+target.Endpoint,
		trace.WithAttributes(
			attribute.String("call.endpoint", target.Endpoint),
			attribute.String("call.transport", kind),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	if r.metrics != nil {
		start := time.Now()
		defer func() {
			r.metrics.RecordCall(ctx, target.Endpoint, kind, time.Since(start), err)
		}()
	}

	var resp *Response
	if target.Binding != nil {
		resp, err = target.Binding.Invoke(ctx, target.Endpoint, header, body)
	} else {
		resp, err = r.post(ctx, target.FallbackURL, target.Endpoint, header, body)
	}
	if err != nil {
		callErr := &CallError{Prefix: r.errorPrefix, cause: err}
		r.fail(ctx, span, target.Endpoint, callErr)
		return nil, callErr
	}

	span.SetAttributes(attribute.Int("call.status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		callErr := &CallError{
			Prefix: r.errorPrefix,
			Status: resp.StatusCode,
			Body:   excerpt(resp.Body),
		}
		r.fail(ctx, span, target.Endpoint, callErr)
		return nil, callErr
	}

	if !json.Valid(resp.Body) {
		r.fail(ctx, span, target.Endpoint, ErrInvalidResponse)
		return nil, ErrInvalidResponse
	}

	span.SetStatus(codes.Ok, "")
	return json.RawMessage(resp.Body), nil
}

func (r *Router) post(ctx context.Context, baseURL, endpoint string, header http.Header, body []byte) (*Response, error) {
	url := strings.TrimSuffix(baseURL, "/") + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header = header.Clone()

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

func (r *Router) fail(ctx context.Context, span trace.Span, endpoint string, err error) {
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	if r.reporter != nil {
		r.reporter.ReportError(ctx, endpoint, err)
	}
}
