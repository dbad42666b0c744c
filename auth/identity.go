package auth

import "time"

// Identity is the principal carried by a validated token.
type Identity struct {
	// Principal is the unique identifier (e.g. user id, email).
	Principal string

	// CompanyID is the tenant this identity belongs to.
	CompanyID string

	// ExpiresAt is when the token expires. Zero means no expiry claim.
	ExpiresAt time.Time

	// IssuedAt is when the token was issued.
	IssuedAt time.Time

	// Claims contains the raw claims from the token.
	Claims map[string]any
}

// IsExpired checks if the identity has expired.
func (id *Identity) IsExpired() bool {
	if id.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(id.ExpiresAt)
}
