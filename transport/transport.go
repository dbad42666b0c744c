package transport

import (
	"context"
	"net/http"
)

// Response is the raw outcome of a delivery over either transport.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Binding is a direct, co-located call path to a downstream service,
// bypassing the public network.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Invoke must honor cancellation/deadlines.
// - Errors: transport-level failures only; a served non-2xx status is a
//   normal Response, not an error.
type Binding interface {
	// Invoke delivers body to the internal endpoint with the given headers.
	Invoke(ctx context.Context, endpoint string, header http.Header, body []byte) (*Response, error)
}

// Target describes one delivery.
type Target struct {
	// Binding is the direct call path. Nil means use the fallback URL.
	Binding Binding

	// FallbackURL is the public base URL used when no binding is supplied.
	FallbackURL string

	// Endpoint is the internal endpoint identifier, e.g. "/templates/get".
	Endpoint string

	// Payload is JSON-encoded as the request body.
	Payload any

	// Token, when set, is sent as an Authorization bearer credential.
	Token string
}
