package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"glint/internal/cachemanager"
)

// DefaultCacheTTL is how long an analysis result stays reusable.
const DefaultCacheTTL = 30 * time.Minute

// Digest returns the content key for a source snippet. Identical source
// always hits the same cache entry.
func Digest(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Cached wraps an analyzer with a read-through cache keyed by source
// digest. Re-analyzing unchanged source never re-pays the model call.
type Cached struct {
	inner Analyzer
	cache *cachemanager.ReadThroughCache[string, *Report, Request]
	ttl   time.Duration
}

var _ Analyzer = (*Cached)(nil)

// NewCached wraps inner. A non-positive ttl uses DefaultCacheTTL.
func NewCached(inner Analyzer, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	manager := cachemanager.NewInMemoryCacheManager[string, *Report]("analysis", ttl, ttl)
	loader := func(ctx context.Context, req Request) (*Report, error) {
		return inner.Analyze(ctx, req)
	}
	return &Cached{
		inner: inner,
		cache: cachemanager.NewReadThroughCache(manager, loader, false),
		ttl:   ttl,
	}
}

// Name implements Analyzer, passing through the wrapped name.
func (c *Cached) Name() string {
	return c.inner.Name()
}

// Analyze implements Analyzer. The cache key covers both the source and
// the language hint, since the hint shapes the review.
func (c *Cached) Analyze(ctx context.Context, req Request) (*Report, error) {
	key := Digest(req.Language + "\x00" + req.Source)
	return c.cache.Get(ctx, key, req, c.ttl)
}
