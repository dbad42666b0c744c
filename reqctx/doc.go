// Package reqctx carries per-request state across asynchronous call chains.
//
// A RequestContext is established once at the entry point of an inbound
// request and is implicitly visible, read-only, to every operation spawned
// during that request. It carries the pieces of state that nearly every
// orchestration handler needs: the platform credential, the tenant (company)
// id, the set of runtime bindings to co-located services, a correlation id
// for tracing, the platform base URL, and an opaque user object.
//
// The package is built on context.Context, so two concurrently running
// requests on a shared worker pool can never observe each other's values:
// isolation is structural, not locked. Nested Establish calls shadow the
// parent only for their own dynamic extent; the parent view is restored on
// return.
//
// Absence of a context is not an error. Current returns the zero value when
// nothing is established, so downstream code treats a missing field (for
// example a missing credential) as an ordinary unauthenticated condition.
//
// Usage:
//
//	rc := reqctx.Context{Token: tok, CompanyID: cid, BaseURL: url}
//	err := reqctx.Establish(ctx, rc, func(ctx context.Context) error {
//	    return handler.Run(ctx)
//	})
package reqctx
