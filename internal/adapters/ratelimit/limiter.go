// Package ratelimit bounds request rates per caller and route.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter keeps one token bucket per (caller, route) pair, provisioned at
// perMinute requests per minute with a burst of the same size.
type Limiter struct {
	perMinute int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

func New(perMinute int) *Limiter {
	return &Limiter{
		perMinute: perMinute,
		buckets:   make(map[string]*rate.Limiter),
	}
}

func (l *Limiter) Allow(callerKey, route string) bool {
	return l.bucket(callerKey + "\x00" + route).Allow()
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute)
		l.buckets[key] = bucket
	}
	return bucket
}
