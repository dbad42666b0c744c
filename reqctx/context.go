package reqctx

import (
	"context"

	"github.com/google/uuid"
)

// Context key for the request context value.
type contextKey int

const requestKey contextKey = iota

// Context holds the ambient per-request state. All fields are optional;
// the zero value means "no request context".
type Context struct {
	// Token is the opaque platform credential for this request.
	Token string

	// CompanyID is the tenant this request acts on behalf of.
	CompanyID string

	// CorrelationID identifies this request across log lines and spans.
	CorrelationID string

	// BaseURL is the public platform API base URL.
	BaseURL string

	// Bindings maps service names to runtime binding handles. Values are
	// opaque here; callers type-assert them (e.g. to transport.Binding).
	Bindings map[string]any

	// User is the opaque user object supplied by the upstream handler.
	User map[string]any
}

// IsZero reports whether no field of the context is set.
func (rc Context) IsZero() bool {
	return rc.Token == "" && rc.CompanyID == "" && rc.CorrelationID == "" &&
		rc.BaseURL == "" && rc.Bindings == nil && rc.User == nil
}

// With returns a new context carrying rc. Any previously attached request
// context is shadowed for the returned context's lifetime.
func With(ctx context.Context, rc Context) context.Context {
	return context.WithValue(ctx, requestKey, rc)
}

// Establish runs fn with rc as the ambient request context for its full
// dynamic extent, including any goroutines fn spawns with the derived
// context. fn's error is propagated unchanged. A missing correlation id is
// filled in with a fresh UUID so every request is traceable.
func Establish(ctx context.Context, rc Context, fn func(context.Context) error) error {
	if rc.CorrelationID == "" {
		rc.CorrelationID = uuid.NewString()
	}
	return fn(With(ctx, rc))
}

// Current returns the ambient request context, or the zero value if none is
// established. It never panics.
func Current(ctx context.Context) Context {
	if ctx == nil {
		return Context{}
	}
	rc, _ := ctx.Value(requestKey).(Context)
	return rc
}

// TokenFromContext returns the ambient credential, or "" if none is set.
func TokenFromContext(ctx context.Context) string {
	return Current(ctx).Token
}

// CompanyIDFromContext returns the ambient tenant id, or "" if none is set.
func CompanyIDFromContext(ctx context.Context) string {
	return Current(ctx).CompanyID
}

// CorrelationIDFromContext returns the ambient correlation id, or "" if none
// is set.
func CorrelationIDFromContext(ctx context.Context) string {
	return Current(ctx).CorrelationID
}

// BaseURLFromContext returns the ambient platform base URL, or "" if none is
// set.
func BaseURLFromContext(ctx context.Context) string {
	return Current(ctx).BaseURL
}

// UserFromContext returns the ambient user object, or nil if none is set.
func UserFromContext(ctx context.Context) map[string]any {
	return Current(ctx).User
}

// BindingFromContext returns the named runtime binding handle.
// The second return is false when the binding set is absent or the name is
// not bound.
func BindingFromContext(ctx context.Context, name string) (any, bool) {
	rc := Current(ctx)
	if rc.Bindings == nil {
		return nil, false
	}
	b, ok := rc.Bindings[name]
	return b, ok
}
