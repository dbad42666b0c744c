// Package transport delivers JSON payloads to named platform operations
// through one of two transports behind a single call surface.
//
// A Target names the operation (Endpoint), carries the payload, and
// optionally supplies a Binding: a direct, co-located call path to the
// downstream service. When a binding is present the call goes through it;
// otherwise the router POSTs to the public fallback URL. The choice is
// made exactly once, upfront, per call. There is no mid-call fallback from
// one transport to the other; retrying is the caller's concern (see the
// resilience package).
//
// Both transports share one wire contract: POST, Content-Type
// application/json, an optional Authorization bearer header, and a JSON
// body. Any 2xx response with a JSON body is a success. Network failures
// and non-2xx responses surface as a single error kind, *CallError,
// carrying the status code and a response-body excerpt.
package transport
