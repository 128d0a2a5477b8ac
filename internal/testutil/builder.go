package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"glint/internal/store"
)

// Builder accumulates review cycles and saves them in order, so tests can
// arrange history with controlled timestamps through the public Save path.
type Builder struct {
	t      *testing.T
	db     *store.DB
	cycles []*store.Cycle
}

// NewBuilder creates a builder for the given test database.
func NewBuilder(t *testing.T, db *store.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db}
}

// WithCycle adds a review cycle with optional configuration.
func (b *Builder) WithCycle(id string, opts ...CycleOption) *Builder {
	cycle := defaultCycle(id)
	for _, opt := range opts {
		opt(cycle)
	}
	b.cycles = append(b.cycles, cycle)
	return b
}

// Build saves all accumulated cycles in insertion order.
func (b *Builder) Build() {
	b.t.Helper()
	repo := b.db.ReviewRepository()
	for _, c := range b.cycles {
		require.NoError(b.t, repo.Save(c))
	}
}
