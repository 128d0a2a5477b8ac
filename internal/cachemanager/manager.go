// Package cachemanager provides a small generic caching layer. glint uses
// it to memoize line segmentation and to avoid re-running the analyzer on
// source that has not changed.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the generic cache contract.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetMultiple(ctx context.Context, keys []K) (map[K]V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
