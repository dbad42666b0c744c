package transport

import (
	"errors"
	"fmt"
)

// Sentinel errors for transport operations.
var (
	// ErrNoTarget is returned when a target has neither a binding nor a
	// fallback URL.
	ErrNoTarget = errors.New("transport: target has no binding and no fallback URL")

	// ErrInvalidResponse is returned when a 2xx response body is not JSON.
	ErrInvalidResponse = errors.New("transport: response body is not valid JSON")
)

// maxErrorBody limits the response-body excerpt carried in a CallError.
const maxErrorBody = 512

// CallError is the single error kind for external-call failures: network
// errors and non-2xx responses both surface as a *CallError.
type CallError struct {
	// Prefix is the configured error prefix, e.g. "platform call failed".
	Prefix string

	// Status is the HTTP status code, or 0 for a network-level failure.
	Status int

	// Body is an excerpt of the response body text.
	Body string

	cause error
}

// Error formats as "<prefix>: <status> - <body>" for served failures, or
// "<prefix>: <cause>" for network-level ones.
func (e *CallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %d - %s", e.Prefix, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Prefix, e.cause)
}

// Unwrap returns the underlying network error, if any.
func (e *CallError) Unwrap() error {
	return e.cause
}

func excerpt(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}
