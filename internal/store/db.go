// Package store persists review history in SQLite. Every completed
// analysis cycle is recorded so past reviews can be listed and reloaded
// without re-running an analyzer.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"glint/internal/log"
)

// schema is applied on every open; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS review_cycles (
	id TEXT PRIMARY KEY,
	digest TEXT NOT NULL,
	language TEXT NOT NULL DEFAULT '',
	analyzer TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL,
	findings TEXT NOT NULL DEFAULT '[]',
	finding_count INTEGER NOT NULL DEFAULT 0,
	max_risk TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_review_cycles_digest ON review_cycles(digest);
CREATE INDEX IF NOT EXISTS idx_review_cycles_created ON review_cycles(created_at);
`

// DB owns the SQLite connection and the repositories built on it.
type DB struct {
	db      *sql.DB
	reviews *ReviewRepository
}

// NewDB opens (creating if necessary) the database at path and applies the
// schema. Parent directories are created for file-backed paths; ":memory:"
// is accepted for tests.
func NewDB(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log.Debug(log.CatStore, "database opened", "path", path)
	return &DB{
		db:      db,
		reviews: NewReviewRepository(db),
	}, nil
}

// ReviewRepository returns the review history repository.
func (d *DB) ReviewRepository() *ReviewRepository {
	return d.reviews
}

// Close releases the underlying connection.
func (d *DB) Close() error {
	return d.db.Close()
}
