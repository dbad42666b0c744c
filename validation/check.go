package validation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// CheckFunc computes a boolean outcome. The returned ttl is the caller's
// acceptable staleness for this particular result; zero means use the
// policy default.
type CheckFunc func(ctx context.Context) (value bool, ttl time.Duration, err error)

// Metrics receives one record per cache consultation.
type Metrics interface {
	RecordCacheLookup(ctx context.Context, hit bool)
}

// Check memoizes an expensive boolean computation through a cache.
//
// Errors are never cached: a failed computation leaves the cache untouched
// so the next caller recomputes.
type Check struct {
	cache   *Cache
	scope   string
	metrics Metrics
}

// CheckOption configures a Check.
type CheckOption func(*Check)

// WithMetrics sets the metrics sink fed one record per lookup.
func WithMetrics(m Metrics) CheckOption {
	return func(c *Check) {
		c.metrics = m
	}
}

// NewCheck creates a memoizer over cache. scope namespaces the keys so
// independent checks sharing one cache cannot collide.
func NewCheck(cache *Cache, scope string, opts ...CheckOption) *Check {
	c := &Check{cache: cache, scope: scope}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do returns the cached outcome for key, or runs fn and caches its result.
// key is opaque and is hashed before use, so raw credentials never sit in
// the cache map.
func (c *Check) Do(ctx context.Context, key string, fn CheckFunc) (bool, error) {
	hashed := Key(c.scope, key)

	outcome := c.cache.Get(hashed)
	if c.metrics != nil {
		c.metrics.RecordCacheLookup(ctx, outcome.Known())
	}
	if outcome.Known() {
		return outcome == OutcomeValid, nil
	}

	value, ttl, err := fn(ctx)
	if err != nil {
		return false, err
	}

	c.cache.Set(hashed, value, ttl)
	return value, nil
}

// Key builds a cache key from a scope and an opaque input.
// Format: validation:<scope>:<hash>
// where hash is the first 16 hex characters of SHA-256(input).
func Key(scope, input string) string {
	sum := sha256.Sum256([]byte(input))
	return "validation:" + scope + ":" + hex.EncodeToString(sum[:8])
}
