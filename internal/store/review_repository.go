package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrCycleNotFound is returned when a lookup matches no stored cycle.
var ErrCycleNotFound = errors.New("review cycle not found")

// cycleColumns is the column list for cycle queries.
const cycleColumns = `id, digest, language, analyzer, summary, source,
	findings, finding_count, max_risk, created_at`

// ReviewRepository stores and retrieves analysis cycles. Cycles are
// immutable once saved; there is no update path.
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a repository over an open database.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// scanCycle scans a row into a cycleModel.
func scanCycle(scanner interface{ Scan(...any) error }) (*cycleModel, error) {
	var model cycleModel
	err := scanner.Scan(
		&model.ID, &model.Digest, &model.Language, &model.Analyzer,
		&model.Summary, &model.Source, &model.Findings,
		&model.FindingCount, &model.MaxRisk, &model.CreatedAt,
	)
	return &model, err
}

// Save inserts a cycle. A missing ID gets a fresh UUID and a zero
// CreatedAt is stamped with the current time; both are written back to c.
func (r *ReviewRepository) Save(c *Cycle) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	model, err := toCycleModel(c)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		`INSERT INTO review_cycles (
			id, digest, language, analyzer, summary, source,
			findings, finding_count, max_risk, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		model.ID, model.Digest, model.Language, model.Analyzer,
		model.Summary, model.Source, model.Findings,
		model.FindingCount, model.MaxRisk, model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review cycle: %w", err)
	}
	return nil
}

// FindByID retrieves one cycle. Returns ErrCycleNotFound when absent.
func (r *ReviewRepository) FindByID(id string) (*Cycle, error) {
	row := r.db.QueryRow(
		`SELECT `+cycleColumns+` FROM review_cycles WHERE id = ?`, id,
	)
	model, err := scanCycle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCycleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find cycle by id: %w", err)
	}
	return model.toDomain()
}

// FindByDigest retrieves the most recent cycle for a source digest.
// Returns ErrCycleNotFound when the digest has never been analyzed.
func (r *ReviewRepository) FindByDigest(digest string) (*Cycle, error) {
	row := r.db.QueryRow(
		`SELECT `+cycleColumns+` FROM review_cycles
		 WHERE digest = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		digest,
	)
	model, err := scanCycle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCycleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find cycle by digest: %w", err)
	}
	return model.toDomain()
}

// ListRecent returns cycles newest first, up to limit. A non-positive
// limit returns everything.
func (r *ReviewRepository) ListRecent(limit int) ([]*Cycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM review_cycles
		ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list review cycles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cycles []*Cycle
	for rows.Next() {
		model, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review cycle row: %w", err)
		}
		cycle, err := model.toDomain()
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, cycle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review cycle rows: %w", err)
	}
	return cycles, nil
}

// Delete removes a cycle permanently. Returns ErrCycleNotFound when the
// id matches nothing.
func (r *ReviewRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM review_cycles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete review cycle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCycleNotFound
	}
	return nil
}
