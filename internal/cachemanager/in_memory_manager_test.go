package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type chartKey string

type exampleChart struct {
	Ruler  string
	Majors int
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[chartKey, exampleChart]("charts", DefaultExpiration, DefaultCleanupInterval)
	chart := exampleChart{Ruler: "Venus", Majors: 9}
	cache.Set(context.Background(), "birth:1", chart, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "birth:1")
	require.True(t, ok)
	require.Equal(t, chart, got)
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	cache := NewInMemoryCacheManager[chartKey, exampleChart]("charts", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "birth:1")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("charts", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("birth:1", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "birth:1")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("charts", DefaultExpiration, DefaultCleanupInterval)

	_, ok := cache.GetWithRefresh(context.Background(), "birth:1", time.Hour)
	require.False(t, ok)

	cache.Set(context.Background(), "birth:1", "Ketu", 5*time.Second)
	got, ok := cache.GetWithRefresh(context.Background(), "birth:1", time.Hour)
	require.True(t, ok)
	require.Equal(t, "Ketu", got)

	_, expiry, found := cache.cache.GetWithExpiration("birth:1")
	require.True(t, found)
	require.True(t, expiry.After(time.Now().Add(30*time.Minute)), "ttl should be extended")
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("charts", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(ctx, "a", "Ketu", DefaultExpiration)
	cache.Set(ctx, "b", "Venus", DefaultExpiration)
	cache.Set(ctx, "c", "Sun", DefaultExpiration)

	require.Equal(t, 3, cache.Stats().Items)

	require.NoError(t, cache.Flush(ctx))
	_, ok := cache.Get(ctx, "b")
	require.False(t, ok)
	require.Zero(t, cache.Stats().Items)
}

func TestInMemoryCacheManager_Stats(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("charts", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", 1, DefaultExpiration)
	_, _ = cache.Get(ctx, "a")
	_, _ = cache.Get(ctx, "a")
	_, _ = cache.Get(ctx, "missing")

	require.Equal(t, Stats{Hits: 2, Misses: 1, Items: 1}, cache.Stats())
}
