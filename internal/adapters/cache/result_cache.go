// Package cache provides the TTL-bounded listing cache.
package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Yiling-J/theine-go"
	"github.com/cespare/xxhash/v2"

	"github.com/clintonMF/smilecook/internal/core/domain"
)

// ResultCache caches listing pages in a theine cache with per-entry TTL.
// Keys mix in a per-route generation counter: bumping the counter orphans
// every entry under that route in one atomic step, which is how coarse
// route-prefix invalidation is realized. Orphaned entries age out of the
// backing cache through the TTL and size bound.
type ResultCache struct {
	entries *theine.Cache[string, *domain.Page]
	ttl     time.Duration

	mu          sync.Mutex
	generations map[string]*atomic.Uint64
}

func New(size int64, ttl time.Duration) (*ResultCache, error) {
	entries, err := theine.NewBuilder[string, *domain.Page](size).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build cache: %w", err)
	}
	return &ResultCache{
		entries:     entries,
		ttl:         ttl,
		generations: make(map[string]*atomic.Uint64),
	}, nil
}

func (c *ResultCache) GetOrCompute(ctx context.Context, route string, params map[string]string, compute func() (*domain.Page, error)) (*domain.Page, error) {
	key := c.key(route, params)
	if page, ok := c.entries.Get(key); ok {
		return page, nil
	}

	page, err := compute()
	if err != nil {
		return nil, err
	}
	c.entries.SetWithTTL(key, page, 1, c.ttl)
	return page, nil
}

// Invalidate drops every entry under the route in a single atomic
// generation bump, so a cancelled request can never leave a partial
// invalidation behind.
func (c *ResultCache) Invalidate(route string) {
	c.generation(route).Add(1)
}

func (c *ResultCache) Close() {
	c.entries.Close()
}

// key renders (route, generation, params) into a stable cache key. Params
// are hashed in sorted order so two equivalent requests collide regardless
// of how the map iterates, and every key=value pair is terminated so
// distinct parameter sets never produce the same digest.
func (c *ResultCache) key(route string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	h := xxhash.New()
	for _, name := range names {
		_, _ = h.WriteString(name)
		_, _ = h.WriteString("=")
		_, _ = h.WriteString(params[name])
		_, _ = h.WriteString(";")
	}

	return fmt.Sprintf("%s/%d/%x", route, c.generation(route).Load(), h.Sum64())
}

func (c *ResultCache) generation(route string) *atomic.Uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen, ok := c.generations[route]
	if !ok {
		gen = &atomic.Uint64{}
		c.generations[route] = gen
	}
	return gen
}
