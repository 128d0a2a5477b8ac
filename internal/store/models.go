package store

import (
	"encoding/json"
	"fmt"
	"time"

	"glint/internal/finding"
)

// Cycle is one persisted analysis run: the source as analyzed, the
// findings reported against it, and enough metadata to list history
// without decoding anything.
type Cycle struct {
	ID        string
	Digest    string
	Language  string
	Analyzer  string
	Summary   string
	Source    string
	Findings  []finding.Finding
	MaxRisk   finding.Risk
	CreatedAt time.Time
}

// cycleModel is the database row for review_cycles. Findings are stored as
// a JSON array; timestamps are Unix seconds.
type cycleModel struct {
	ID           string
	Digest       string
	Language     string
	Analyzer     string
	Summary      string
	Source       string
	Findings     string
	FindingCount int
	MaxRisk      string
	CreatedAt    int64
}

func toCycleModel(c *Cycle) (*cycleModel, error) {
	findings := c.Findings
	if findings == nil {
		findings = []finding.Finding{}
	}
	encoded, err := json.Marshal(findings)
	if err != nil {
		return nil, fmt.Errorf("encode findings: %w", err)
	}
	return &cycleModel{
		ID:           c.ID,
		Digest:       c.Digest,
		Language:     c.Language,
		Analyzer:     c.Analyzer,
		Summary:      c.Summary,
		Source:       c.Source,
		Findings:     string(encoded),
		FindingCount: len(findings),
		MaxRisk:      string(c.MaxRisk),
		CreatedAt:    c.CreatedAt.Unix(),
	}, nil
}

func (m *cycleModel) toDomain() (*Cycle, error) {
	var findings []finding.Finding
	if err := json.Unmarshal([]byte(m.Findings), &findings); err != nil {
		return nil, fmt.Errorf("decode findings: %w", err)
	}
	return &Cycle{
		ID:        m.ID,
		Digest:    m.Digest,
		Language:  m.Language,
		Analyzer:  m.Analyzer,
		Summary:   m.Summary,
		Source:    m.Source,
		Findings:  findings,
		MaxRisk:   finding.Risk(m.MaxRisk),
		CreatedAt: time.Unix(m.CreatedAt, 0),
	}, nil
}
