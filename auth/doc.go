// Package auth validates platform bearer tokens.
//
// Token validation is the expensive boolean check the validation cache
// exists for: the Validator parses and verifies a JWT once, caches the
// outcome keyed by a hash of the token, and answers subsequent calls from
// the cache until the entry expires. The cache TTL of a positive outcome
// is capped by the token's own remaining lifetime, so an expired token is
// never reported valid. Concurrent validations of the same token are
// deduplicated with singleflight.
//
// What to do with an invalid token (reject the request, fall back to an
// anonymous flow) is the caller's decision; this package only answers
// the question.
package auth
