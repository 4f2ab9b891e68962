package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clintonMF/smilecook/internal/core/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) *ResultCache {
	t.Helper()
	c, err := New(1000, ttl)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func page(total int) *domain.Page {
	return domain.NewPage(nil, 1, 10, total)
}

func TestGetOrComputeCachesResult(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()
	params := map[string]string{"q": "pasta", "page": "1"}

	calls := 0
	compute := func() (*domain.Page, error) {
		calls++
		return page(7), nil
	}

	first, err := c.GetOrCompute(ctx, "recipes", params, compute)
	require.NoError(t, err)
	second, err := c.GetOrCompute(ctx, "recipes", params, compute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second request must be served from cache")
	assert.Same(t, first, second)
}

func TestEquivalentParamsCollide(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()

	calls := 0
	compute := func() (*domain.Page, error) {
		calls++
		return page(1), nil
	}

	// Maps iterate in arbitrary order; the key must not depend on it.
	_, err := c.GetOrCompute(ctx, "recipes", map[string]string{"a": "1", "b": "2", "c": "3"}, compute)
	require.NoError(t, err)
	_, err = c.GetOrCompute(ctx, "recipes", map[string]string{"c": "3", "b": "2", "a": "1"}, compute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestDistinctParamsDoNotCollide(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()

	calls := 0
	compute := func() (*domain.Page, error) {
		calls++
		return page(calls), nil
	}

	_, err := c.GetOrCompute(ctx, "recipes", map[string]string{"q": "a", "page": "1"}, compute)
	require.NoError(t, err)
	_, err = c.GetOrCompute(ctx, "recipes", map[string]string{"q": "a", "page": "2"}, compute)
	require.NoError(t, err)
	_, err = c.GetOrCompute(ctx, "other", map[string]string{"q": "a", "page": "1"}, compute)
	require.NoError(t, err)

	assert.Equal(t, 3, calls)
}

func TestInvalidateDropsRoute(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()
	params := map[string]string{"q": ""}

	calls := 0
	compute := func() (*domain.Page, error) {
		calls++
		return page(calls), nil
	}

	_, err := c.GetOrCompute(ctx, "recipes", params, compute)
	require.NoError(t, err)
	kept, err := c.GetOrCompute(ctx, "user_recipes", params, compute)
	require.NoError(t, err)

	c.Invalidate("recipes")

	recomputed, err := c.GetOrCompute(ctx, "recipes", params, compute)
	require.NoError(t, err)
	stillCached, err := c.GetOrCompute(ctx, "user_recipes", params, compute)
	require.NoError(t, err)

	assert.Equal(t, 3, calls, "invalidated route recomputes, other route does not")
	assert.NotEqual(t, 1, recomputed.TotalItems)
	assert.Same(t, kept, stillCached)
}

func TestComputeErrorsAreNotCached(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()
	params := map[string]string{"q": ""}

	boom := errors.New("store unavailable")
	_, err := c.GetOrCompute(ctx, "recipes", params, func() (*domain.Page, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	result, err := c.GetOrCompute(ctx, "recipes", params, func() (*domain.Page, error) {
		return page(4), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalItems)
}

func TestEntriesExpire(t *testing.T) {
	c := newTestCache(t, 20*time.Millisecond)
	ctx := context.Background()
	params := map[string]string{"q": ""}

	calls := 0
	compute := func() (*domain.Page, error) {
		calls++
		return page(calls), nil
	}

	_, err := c.GetOrCompute(ctx, "recipes", params, compute)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = c.GetOrCompute(ctx, "recipes", params, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
