// Package content holds the orchestration handlers for
// security-awareness-training content.
//
// The handlers are deliberately thin: each one reads the ambient request
// state, builds a payload, delivers it through the transport router under
// the shared retry/timeout executor, and shapes the response. All of the
// interesting machinery lives in the reqctx, transport, and resilience
// packages; this package is the glue that composes them.
package content
