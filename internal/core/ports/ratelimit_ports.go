package ports

// RateLimiter bounds request rates per (caller, route) pair. It is
// independent of the result cache: a cached response still counts against
// the limit, since limiting protects backend capacity regardless of hits.
type RateLimiter interface {
	Allow(callerKey, route string) bool
}
