package syntax

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/cachemanager"
)

// countingCache records cache traffic so tests can observe memoization.
type countingCache struct {
	store map[string][]Token
	gets  int
	hits  int
	sets  int
}

func newCountingCache() *countingCache {
	return &countingCache{store: make(map[string][]Token)}
}

func (c *countingCache) Get(_ context.Context, key string) ([]Token, bool) {
	c.gets++
	v, ok := c.store[key]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *countingCache) GetMultiple(_ context.Context, _ []string) (map[string][]Token, bool) {
	return nil, false
}

func (c *countingCache) GetWithRefresh(ctx context.Context, key string, _ time.Duration) ([]Token, bool) {
	return c.Get(ctx, key)
}

func (c *countingCache) Set(_ context.Context, key string, value []Token, _ time.Duration) {
	c.sets++
	c.store[key] = value
}

func (c *countingCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.store, k)
	}
	return nil
}

func (c *countingCache) Flush(_ context.Context) error {
	c.store = make(map[string][]Token)
	return nil
}

var _ cachemanager.CacheManager[string, []Token] = (*countingCache)(nil)

func TestCachedSegmenter_MatchesDirectSegmentation(t *testing.T) {
	p := builtinProfile(t, ProfileCLike)
	seg := NewCachedSegmenter(newCountingCache(), 0)
	ctx := context.Background()

	lines := []string{
		"const x = 1; // note",
		`return "const";`,
		"",
		"fetchData(url)",
	}
	for _, line := range lines {
		assert.Equal(t, SegmentLine(line, p), seg.Segment(ctx, line, p), "line %q", line)
	}
}

func TestCachedSegmenter_ReusesEntries(t *testing.T) {
	p := builtinProfile(t, ProfileCLike)
	cache := newCountingCache()
	seg := NewCachedSegmenter(cache, 0)
	ctx := context.Background()

	first := seg.Segment(ctx, "let y = 2;", p)
	second := seg.Segment(ctx, "let y = 2;", p)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "second call must hit the cache")
	assert.Equal(t, 1, cache.hits)
}

func TestCachedSegmenter_KeysByProfile(t *testing.T) {
	clike := builtinProfile(t, ProfileCLike)
	python := builtinProfile(t, ProfilePython)
	cache := newCountingCache()
	seg := NewCachedSegmenter(cache, 0)
	ctx := context.Background()

	// The same text classifies differently per profile, so entries must
	// not collide.
	line := "# const x = 1"
	clikeTokens := seg.Segment(ctx, line, clike)
	pythonTokens := seg.Segment(ctx, line, python)

	assert.Equal(t, 2, cache.sets)
	assert.NotEqual(t, clikeTokens, pythonTokens)
}

func TestCachedSegmenter_HonorsMaxLen(t *testing.T) {
	p := builtinProfile(t, ProfileCLike)
	seg := NewCachedSegmenter(newCountingCache(), 10)
	ctx := context.Background()

	tokens := seg.Segment(ctx, "const x = 1;", p)
	require.Len(t, tokens, 1)
	assert.Equal(t, ClassPlain, tokens[0].Class)
}

func TestCachedSegmenter_WithInMemoryManager(t *testing.T) {
	p := builtinProfile(t, ProfilePython)
	cache := cachemanager.NewInMemoryCacheManager[string, []Token]("segment", time.Minute, time.Minute)
	seg := NewCachedSegmenter(cache, 0)
	ctx := context.Background()

	line := "def run():  # entry"
	first := seg.Segment(ctx, line, p)
	second := seg.Segment(ctx, line, p)

	assert.Equal(t, SegmentLine(line, p), first)
	assert.Equal(t, first, second)
}
