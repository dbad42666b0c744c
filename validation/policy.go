package validation

import "time"

// Policy configures cache bounds.
type Policy struct {
	// Capacity is the maximum number of resident entries.
	// Default: 512
	Capacity int

	// DefaultTTL is the TTL used when a Set supplies no override.
	// Default: 5 minutes
	DefaultTTL time.Duration

	// MaxTTL caps every TTL, override or default. Zero means no cap.
	MaxTTL time.Duration
}

// DefaultPolicy returns the default cache policy.
// Capacity: 512, DefaultTTL: 5 minutes, MaxTTL: 1 hour
func DefaultPolicy() Policy {
	return Policy{
		Capacity:   512,
		DefaultTTL: 5 * time.Minute,
		MaxTTL:     1 * time.Hour,
	}
}

// EffectiveTTL returns the TTL to use, applying the default and clamping.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}
	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}
	return ttl
}
