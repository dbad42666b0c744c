// Package validation caches expensive boolean outcomes, bounded in size
// and time.
//
// A lookup yields one of three outcomes: OutcomeValid, OutcomeInvalid, or
// OutcomeUnknown. Unknown is not an error; it signals "no trustworthy
// cached answer" and forces the caller to recompute. Expired entries are
// purged lazily, on the read that discovers them: there is no background
// sweep goroutine.
//
// The cache is bounded by Policy.Capacity. When full, the oldest-inserted
// entry is evicted first; eviction follows insertion order, not access
// recency, so a hot key can be evicted if it happens to be the oldest.
//
// Check memoizes a boolean computation through a cache, hashing the
// caller's opaque key so raw credentials never sit in the cache map.
package validation
