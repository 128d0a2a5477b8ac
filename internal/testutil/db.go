// Package testutil provides test utilities for review store setup.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"glint/internal/store"
)

// NewTestDB creates an in-memory review store with the schema applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
