package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/keepnetlabs/agentic-ally-agent-sub012/reqctx"
)

// fakeBinding records invocations and serves canned responses.
type fakeBinding struct {
	calls    atomic.Int32
	endpoint string
	header   http.Header
	body     []byte

	resp *Response
	err  error
}

func (b *fakeBinding) Invoke(_ context.Context, endpoint string, header http.Header, body []byte) (*Response, error) {
	b.calls.Add(1)
	b.endpoint = endpoint
	b.header = header
	b.body = body
	if b.err != nil {
		return nil, b.err
	}
	return b.resp, nil
}

type countingReporter struct {
	errors atomic.Int32
}

func (r *countingReporter) ReportError(context.Context, string, error) {
	r.errors.Add(1)
}

func TestCall_BindingPreferred(t *testing.T) {
	// The fallback server must never be hit when a binding is present.
	fallbackHits := atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallbackHits.Add(1)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	binding := &fakeBinding{resp: &Response{
		StatusCode: 200,
		Body:       []byte(`{"data":{"id":"t-1"}}`),
	}}

	r := NewRouter()
	raw, err := r.Call(context.Background(), Target{
		Binding:     binding,
		FallbackURL: srv.URL,
		Endpoint:    "/templates/get",
		Payload:     map[string]any{"id": "t-1"},
		Token:       "tok",
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if string(raw) != `{"data":{"id":"t-1"}}` {
		t.Errorf("Call() = %s, want binding body unchanged", raw)
	}
	if binding.calls.Load() != 1 {
		t.Errorf("binding invoked %d times, want 1", binding.calls.Load())
	}
	if fallbackHits.Load() != 0 {
		t.Errorf("fallback URL was invoked %d times, want 0", fallbackHits.Load())
	}
	if binding.endpoint != "/templates/get" {
		t.Errorf("endpoint = %q", binding.endpoint)
	}
	if got := binding.header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := binding.header.Get("Authorization"); got != "Bearer tok" {
		t.Errorf("Authorization = %q", got)
	}
	if string(binding.body) != `{"id":"t-1"}` {
		t.Errorf("body = %s", binding.body)
	}
}

func TestCall_FallbackWhenUnbound(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	r := NewRouter()
	raw, err := r.Call(context.Background(), Target{
		FallbackURL: srv.URL,
		Endpoint:    "/content/upload",
		Payload:     map[string]any{"name": "intro"},
		Token:       "tok",
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if string(raw) != `{"ok":true}` {
		t.Errorf("Call() = %s", raw)
	}
	if gotPath != "/content/upload" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestCall_NoAuthorizationWithoutToken(t *testing.T) {
	binding := &fakeBinding{resp: &Response{StatusCode: 200, Body: []byte(`{}`)}}

	r := NewRouter()
	if _, err := r.Call(context.Background(), Target{Binding: binding, Endpoint: "/x"}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got := binding.header.Get("Authorization"); got != "" {
		t.Errorf("Authorization = %q, want unset", got)
	}
}

func TestCall_CorrelationIDHeader(t *testing.T) {
	binding := &fakeBinding{resp: &Response{StatusCode: 200, Body: []byte(`{}`)}}

	ctx := reqctx.With(context.Background(), reqctx.Context{CorrelationID: "corr-7"})
	r := NewRouter()
	if _, err := r.Call(ctx, Target{Binding: binding, Endpoint: "/x"}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got := binding.header.Get("X-Correlation-ID"); got != "corr-7" {
		t.Errorf("X-Correlation-ID = %q, want corr-7", got)
	}
}

func TestCall_ServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	rep := &countingReporter{}
	r := NewRouter(WithReporter(rep))

	_, err := r.Call(context.Background(), Target{FallbackURL: srv.URL, Endpoint: "/x"})
	if err == nil {
		t.Fatal("Call() error = nil, want CallError")
	}

	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("Call() error type = %T, want *CallError", err)
	}
	if callErr.Status != 500 {
		t.Errorf("Status = %d, want 500", callErr.Status)
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() = %q, want to contain 500 and boom", err.Error())
	}
	if rep.errors.Load() != 1 {
		t.Errorf("reported errors = %d, want 1", rep.errors.Load())
	}
}

func TestCall_BindingErrorSurfacesAsCallError(t *testing.T) {
	binding := &fakeBinding{err: errors.New("socket closed")}

	r := NewRouter()
	_, err := r.Call(context.Background(), Target{Binding: binding, Endpoint: "/x"})

	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("Call() error type = %T, want *CallError", err)
	}
	if callErr.Status != 0 {
		t.Errorf("Status = %d, want 0 for network failure", callErr.Status)
	}
	if !strings.Contains(err.Error(), "socket closed") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCall_NetworkErrorSurfacesAsCallError(t *testing.T) {
	r := NewRouter()
	_, err := r.Call(context.Background(), Target{
		FallbackURL: "http://127.0.0.1:1", // nothing listens here
		Endpoint:    "/x",
	})

	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("Call() error type = %T, want *CallError", err)
	}
}

func TestCall_InvalidJSONResponse(t *testing.T) {
	binding := &fakeBinding{resp: &Response{StatusCode: 200, Body: []byte("<html>")}}

	r := NewRouter()
	_, err := r.Call(context.Background(), Target{Binding: binding, Endpoint: "/x"})
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Call() error = %v, want ErrInvalidResponse", err)
	}
}

func TestCall_NoTarget(t *testing.T) {
	r := NewRouter()
	_, err := r.Call(context.Background(), Target{Endpoint: "/x"})
	if !errors.Is(err, ErrNoTarget) {
		t.Errorf("Call() error = %v, want ErrNoTarget", err)
	}
}

func TestCall_ErrorBodyExcerptBounded(t *testing.T) {
	big := strings.Repeat("x", 4096)
	binding := &fakeBinding{resp: &Response{StatusCode: 502, Body: []byte(big)}}

	r := NewRouter()
	_, err := r.Call(context.Background(), Target{Binding: binding, Endpoint: "/x"})

	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("Call() error type = %T", err)
	}
	if len(callErr.Body) != maxErrorBody {
		t.Errorf("excerpt length = %d, want %d", len(callErr.Body), maxErrorBody)
	}
}

func TestCall_CustomErrorPrefix(t *testing.T) {
	binding := &fakeBinding{resp: &Response{StatusCode: 404, Body: []byte("missing")}}

	r := NewRouter(WithErrorPrefix("training fetch failed"))
	_, err := r.Call(context.Background(), Target{Binding: binding, Endpoint: "/x"})
	if err == nil || !strings.HasPrefix(err.Error(), "training fetch failed: 404 - missing") {
		t.Errorf("Error() = %v", err)
	}
}

type recordingMetrics struct {
	mu        sync.Mutex
	endpoints []string
	kinds     []string
	durations []time.Duration
	errs      []error
}

func (m *recordingMetrics) RecordCall(_ context.Context, endpoint, transport string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.endpoints = append(m.endpoints, endpoint)
	m.kinds = append(m.kinds, transport)
	m.durations = append(m.durations, duration)
	m.errs = append(m.errs, err)
}

func TestCall_RecordsMetricsOnSuccess(t *testing.T) {
	binding := &fakeBinding{resp: &Response{StatusCode: 200, Body: []byte(`{}`)}}
	metrics := &recordingMetrics{}

	r := NewRouter(WithMetrics(metrics))
	if _, err := r.Call(context.Background(), Target{Binding: binding, Endpoint: "/x"}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if len(metrics.endpoints) != 1 {
		t.Fatalf("recorded %d calls, want 1", len(metrics.endpoints))
	}
	if metrics.endpoints[0] != "/x" || metrics.kinds[0] != "binding" {
		t.Errorf("recorded endpoint=%q kind=%q", metrics.endpoints[0], metrics.kinds[0])
	}
	if metrics.errs[0] != nil {
		t.Errorf("recorded error = %v, want nil", metrics.errs[0])
	}
	if metrics.durations[0] < 0 {
		t.Errorf("recorded duration = %v", metrics.durations[0])
	}
}

func TestCall_RecordsMetricsOnFailure(t *testing.T) {
	binding := &fakeBinding{resp: &Response{StatusCode: 500, Body: []byte("boom")}}
	metrics := &recordingMetrics{}

	r := NewRouter(WithMetrics(metrics))
	if _, err := r.Call(context.Background(), Target{Binding: binding, Endpoint: "/x"}); err == nil {
		t.Fatal("Call() error = nil, want server error")
	}

	if len(metrics.errs) != 1 {
		t.Fatalf("recorded %d calls, want 1", len(metrics.errs))
	}
	var callErr *CallError
	if !errors.As(metrics.errs[0], &callErr) || callErr.Status != 500 {
		t.Errorf("recorded error = %v, want *CallError with status 500", metrics.errs[0])
	}
}

func TestCall_NoMetricsForUndeliverableTarget(t *testing.T) {
	metrics := &recordingMetrics{}

	r := NewRouter(WithMetrics(metrics))
	if _, err := r.Call(context.Background(), Target{Endpoint: "/x"}); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("Call() error = %v, want ErrNoTarget", err)
	}

	if len(metrics.endpoints) != 0 {
		t.Errorf("recorded %d calls, want 0", len(metrics.endpoints))
	}
}
