// Package presentation formats analysis reports and review history for
// the headless CLI commands, as plain text tables or JSON.
package presentation

import (
	"time"

	"glint/internal/analyzer"
	"glint/internal/finding"
	"glint/internal/store"
)

// FindingDTO represents one finding in CLI output.
type FindingDTO struct {
	ID         string `json:"id"`
	Line       int    `json:"line,omitempty"`
	Risk       string `json:"risk"`
	Title      string `json:"title"`
	Reason     string `json:"reason,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ReportDTO represents a full analysis report in CLI output.
type ReportDTO struct {
	Name     string       `json:"name,omitempty"`
	Language string       `json:"language,omitempty"`
	Analyzer string       `json:"analyzer"`
	Summary  string       `json:"summary,omitempty"`
	MaxRisk  string       `json:"max_risk,omitempty"`
	Findings []FindingDTO `json:"findings"`
	Duration string       `json:"duration,omitempty"`
}

// CycleDTO represents one stored review cycle in history output.
type CycleDTO struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Language  string    `json:"language,omitempty"`
	Analyzer  string    `json:"analyzer,omitempty"`
	MaxRisk   string    `json:"max_risk,omitempty"`
	Findings  int       `json:"findings"`
	Digest    string    `json:"digest"`
	Summary   string    `json:"summary,omitempty"`
}

// FromFinding converts a domain finding to a DTO.
func FromFinding(f finding.Finding) FindingDTO {
	return FindingDTO{
		ID:         f.ID,
		Line:       f.Line,
		Risk:       string(f.Risk),
		Title:      f.Title,
		Reason:     f.Reason,
		Detail:     f.Detail,
		Suggestion: f.Suggestion,
	}
}

// FromReport converts an analysis report to a DTO. Name and language come
// from the caller; the report itself does not know where its source came
// from.
func FromReport(name, language string, r *analyzer.Report) ReportDTO {
	findings := make([]FindingDTO, 0, len(r.Findings))
	for _, f := range r.Findings {
		findings = append(findings, FromFinding(f))
	}

	maxRisk := ""
	if risk := r.MaxRisk(); risk.Valid() {
		maxRisk = string(risk)
	}

	duration := ""
	if r.Duration > 0 {
		duration = r.Duration.Round(time.Millisecond).String()
	}

	return ReportDTO{
		Name:     name,
		Language: language,
		Analyzer: r.Analyzer,
		Summary:  r.Summary,
		MaxRisk:  maxRisk,
		Findings: findings,
		Duration: duration,
	}
}

// FromCycle converts a stored review cycle to a DTO.
func FromCycle(c *store.Cycle) CycleDTO {
	return CycleDTO{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Language:  c.Language,
		Analyzer:  c.Analyzer,
		MaxRisk:   string(c.MaxRisk),
		Findings:  len(c.Findings),
		Digest:    c.Digest,
		Summary:   c.Summary,
	}
}

// FromCycles converts a history listing to DTOs.
func FromCycles(cycles []*store.Cycle) []CycleDTO {
	dtos := make([]CycleDTO, 0, len(cycles))
	for _, c := range cycles {
		dtos = append(dtos, FromCycle(c))
	}
	return dtos
}
