package testutil

import (
	"time"

	"glint/internal/finding"
	"glint/internal/store"
)

// CycleOption configures a cycle being built.
type CycleOption func(*store.Cycle)

func defaultCycle(id string) *store.Cycle {
	return &store.Cycle{
		ID:       id,
		Digest:   "digest-" + id,
		Language: "python",
		Analyzer: "local",
		Summary:  "No known dangerous patterns detected.",
		Source:   "x = 1",
	}
}

// WithDigest sets the source digest.
func WithDigest(digest string) CycleOption {
	return func(c *store.Cycle) {
		c.Digest = digest
	}
}

// WithSource sets the analyzed source text.
func WithSource(source string) CycleOption {
	return func(c *store.Cycle) {
		c.Source = source
	}
}

// WithLanguage sets the detected language.
func WithLanguage(language string) CycleOption {
	return func(c *store.Cycle) {
		c.Language = language
	}
}

// WithAnalyzer sets the analyzer name.
func WithAnalyzer(analyzer string) CycleOption {
	return func(c *store.Cycle) {
		c.Analyzer = analyzer
	}
}

// WithSummary sets the report summary.
func WithSummary(summary string) CycleOption {
	return func(c *store.Cycle) {
		c.Summary = summary
	}
}

// WithCreatedAt pins the save timestamp, for ordering tests.
func WithCreatedAt(ts time.Time) CycleOption {
	return func(c *store.Cycle) {
		c.CreatedAt = ts
	}
}

// WithFinding appends a finding and raises MaxRisk when needed.
func WithFinding(f finding.Finding) CycleOption {
	return func(c *store.Cycle) {
		c.Findings = append(c.Findings, f)
		if f.Risk.Rank() > c.MaxRisk.Rank() {
			c.MaxRisk = f.Risk
		}
	}
}
