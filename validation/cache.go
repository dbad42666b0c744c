package validation

import (
	"container/list"
	"sync"
	"time"
)

// Outcome is the tri-state result of a cache lookup.
type Outcome int

const (
	// OutcomeUnknown means no trustworthy cached answer exists; the caller
	// must recompute.
	OutcomeUnknown Outcome = iota
	// OutcomeValid is a cached true.
	OutcomeValid
	// OutcomeInvalid is a cached false.
	OutcomeInvalid
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Known reports whether the outcome carries a cached answer.
func (o Outcome) Known() bool {
	return o != OutcomeUnknown
}

// Bool converts a boolean to its cached outcome.
func Bool(v bool) Outcome {
	if v {
		return OutcomeValid
	}
	return OutcomeInvalid
}

// Cache is a bounded TTL cache for boolean outcomes.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Capacity: never exceeded after any Set; the oldest-inserted entry is
//   evicted first when full.
// - Expiry: an entry is never returned past its expiry; it is purged on
//   the read that discovers it.
type Cache struct {
	mu      sync.Mutex
	policy  Policy
	entries map[string]*list.Element
	order   *list.List // front = oldest inserted
}

type cacheEntry struct {
	key       string
	value     bool
	expiresAt time.Time
}

// New creates a cache with the given policy.
func New(policy Policy) *Cache {
	if policy.Capacity <= 0 {
		policy.Capacity = DefaultPolicy().Capacity
	}
	if policy.DefaultTTL <= 0 {
		policy.DefaultTTL = DefaultPolicy().DefaultTTL
	}
	return &Cache{
		policy:  policy,
		entries: make(map[string]*list.Element, policy.Capacity),
		order:   list.New(),
	}
}

// Get returns the cached outcome for key. Present and unexpired entries
// yield OutcomeValid or OutcomeInvalid; an expired entry is purged and
// reported as OutcomeUnknown, as is an absent key.
func (c *Cache) Get(key string) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return OutcomeUnknown
	}

	entry := elem.Value.(*cacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.removeLocked(elem)
		return OutcomeUnknown
	}

	return Bool(entry.value)
}

// Set stores value under key with expiry now + (ttlOverride or the policy
// default), clamped to the policy maximum. When the cache is at capacity
// the single oldest-inserted entry is evicted first. Re-setting an
// existing key updates it in place and keeps its insertion position.
func (c *Cache) Set(key string, value bool, ttlOverride time.Duration) {
	expiresAt := time.Now().Add(c.policy.EffectiveTTL(ttlOverride))

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		return
	}

	if c.order.Len() >= c.policy.Capacity {
		if oldest := c.order.Front(); oldest != nil {
			c.removeLocked(oldest)
		}
	}

	c.entries[key] = c.order.PushBack(&cacheEntry{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	})
}

// Delete removes key. Idempotent.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.removeLocked(elem)
	}
}

// Len returns the number of resident entries, expired ones included until
// a read purges them.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache) removeLocked(elem *list.Element) {
	entry := c.order.Remove(elem).(*cacheEntry)
	delete(c.entries, entry.key)
}
