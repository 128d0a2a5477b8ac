package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// analysisResult stands in for the report values glint caches per source
// digest.
type analysisResult struct {
	Digest   string
	Findings int
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingStructValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, analysisResult]("reports", DefaultExpiration, DefaultCleanupInterval)
	want := analysisResult{Digest: "abc123", Findings: 2}
	cache.Set(context.Background(), "report:abc123", want, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "report:abc123")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestInMemoryCacheManager_GetMissingKey(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("segments", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "clike\x00const x = 1;")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWrongStoredType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("segments", DefaultExpiration, DefaultCleanupInterval)

	// Poison the underlying store with a mismatched type.
	cache.cache.Set("line", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "line")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetMultiple(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("segments", DefaultExpiration, DefaultCleanupInterval)

	t.Run("no keys does nothing", func(t *testing.T) {
		got, ok := cache.GetMultiple(context.Background(), []string{})
		require.False(t, ok)
		require.Nil(t, got)
	})

	t.Run("returns present keys and skips missing", func(t *testing.T) {
		cache.Set(context.Background(), "a", "tokens-a", DefaultExpiration)
		cache.Set(context.Background(), "b", "tokens-b", DefaultExpiration)

		got, ok := cache.GetMultiple(context.Background(), []string{"a", "b", "missing"})
		require.True(t, ok)
		require.Equal(t, map[string]string{"a": "tokens-a", "b": "tokens-b"}, got)
	})

	t.Run("all missing reports false", func(t *testing.T) {
		got, ok := cache.GetMultiple(context.Background(), []string{"x", "y"})
		require.False(t, ok)
		require.Nil(t, got)
	})

	t.Run("wrong type counts as missing", func(t *testing.T) {
		cache.cache.Set("bad", 99, DefaultExpiration)

		got, ok := cache.GetMultiple(context.Background(), []string{"a", "bad"})
		require.True(t, ok)
		require.Equal(t, map[string]string{"a": "tokens-a"}, got)
	})
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("reports", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.GetWithRefresh(context.Background(), "report:missing", time.Hour)
	require.False(t, ok)
	require.Empty(t, got)

	cache.Set(context.Background(), "report:live", "cached", DefaultExpiration)
	got, ok = cache.GetWithRefresh(context.Background(), "report:live", time.Hour)
	require.True(t, ok)
	require.Equal(t, "cached", got)
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("segments", DefaultExpiration, DefaultCleanupInterval)

	require.NoError(t, cache.Delete(context.Background()), "no keys is a no-op")

	cache.Set(context.Background(), "line", "tokens", DefaultExpiration)
	require.NoError(t, cache.Delete(context.Background(), "line"))

	_, ok := cache.Get(context.Background(), "line")
	require.False(t, ok)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("segments", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "line", "tokens", DefaultExpiration)

	require.NoError(t, cache.Flush(context.Background()))

	_, ok := cache.Get(context.Background(), "line")
	require.False(t, ok)
}
