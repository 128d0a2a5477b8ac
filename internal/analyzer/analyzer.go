// Package analyzer produces security findings for pasted source snippets.
//
// Implementations share one contract: given a source document and a
// language hint, return a Report whose findings use 1-based line anchors.
// Line 0 means the finding applies to the document as a whole. The Local
// analyzer works offline from a pattern table; OpenAI asks a model and
// parses its JSON; Multi merges several analyzers into one report.
package analyzer

import (
	"context"
	"errors"
	"time"

	"glint/internal/finding"
)

var (
	// ErrEmptySource is returned when there is nothing to analyze.
	ErrEmptySource = errors.New("source is empty")

	// ErrNoAPIKey is returned when a remote analyzer is constructed
	// without credentials.
	ErrNoAPIKey = errors.New("api key not configured")

	// ErrNoAnalyzers is returned when a composite has nothing to run.
	ErrNoAnalyzers = errors.New("no analyzers configured")
)

// Request carries one snippet into an analysis run.
type Request struct {
	Source   string
	Language string
}

// Report is the outcome of one analysis cycle.
type Report struct {
	ID       string            `json:"id"`
	Analyzer string            `json:"analyzer"`
	Summary  string            `json:"summary"`
	Findings []finding.Finding `json:"findings"`
	Duration time.Duration     `json:"duration"`
}

// MaxRisk returns the highest risk across the report's findings, or ""
// when there are none.
func (r *Report) MaxRisk() finding.Risk {
	var max finding.Risk
	for _, f := range r.Findings {
		if f.Risk.Rank() > max.Rank() {
			max = f.Risk
		}
	}
	return max
}

// Analyzer reviews source for security issues.
type Analyzer interface {
	// Name identifies the analyzer in reports and logs.
	Name() string

	// Analyze reviews the request's source. The returned report is owned
	// by the caller.
	Analyze(ctx context.Context, req Request) (*Report, error)
}
