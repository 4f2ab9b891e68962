package ports

import (
	"context"

	"github.com/clintonMF/smilecook/internal/core/domain"
)

// ResultCache caches listing pages keyed by a normalized, order-independent
// encoding of the query parameters. Invalidation is coarse: a single call
// drops every entry cached under the given route.
type ResultCache interface {
	// GetOrCompute returns the cached page for (route, params) if present
	// and fresh, otherwise runs compute and caches a successful result.
	// Compute errors are returned as-is and never cached.
	GetOrCompute(ctx context.Context, route string, params map[string]string, compute func() (*domain.Page, error)) (*domain.Page, error)
	// Invalidate atomically drops all entries under the route prefix.
	Invalidate(route string)
}
