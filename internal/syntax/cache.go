package syntax

import (
	"context"
	"time"

	"glint/internal/cachemanager"
)

// SegmentTTL bounds how long memoized lines live. Segmentation is pure, so
// entries never go stale; the TTL only caps memory on huge documents.
const SegmentTTL = 10 * time.Minute

// CachedSegmenter memoizes SegmentLine keyed by profile id and line text.
// Results are identical to calling SegmentLine directly.
type CachedSegmenter struct {
	cache  cachemanager.CacheManager[string, []Token]
	maxLen int
}

// NewCachedSegmenter wraps the given cache. A maxLen of zero or less falls
// back to DefaultMaxLineLen.
func NewCachedSegmenter(cache cachemanager.CacheManager[string, []Token], maxLen int) *CachedSegmenter {
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLen
	}
	return &CachedSegmenter{cache: cache, maxLen: maxLen}
}

// Segment returns the token run for line under p. Callers must not mutate
// the returned slice; it may be shared with the cache.
func (s *CachedSegmenter) Segment(ctx context.Context, line string, p *Profile) []Token {
	key := p.ID + "\x00" + line
	if tokens, ok := s.cache.Get(ctx, key); ok {
		return tokens
	}

	tokens := segmentLine(line, p, s.maxLen)
	s.cache.Set(ctx, key, tokens, SegmentTTL)
	return tokens
}
