package auth

import "errors"

// Sentinel errors for token validation.
var (
	// ErrMissingToken indicates an empty token was supplied.
	ErrMissingToken = errors.New("auth: missing token")

	// ErrMissingKey indicates the validator was built without a signing key.
	ErrMissingKey = errors.New("auth: signing key is required")

	// ErrUnexpectedClaims indicates a verified token carried a claims type
	// the identity extractor cannot read.
	ErrUnexpectedClaims = errors.New("auth: unexpected claims type")
)
