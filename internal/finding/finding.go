// Package finding holds the security findings an analysis cycle produces
// and the line index the annotation engine reads them through.
package finding

import "strings"

// Risk grades how severe a finding is.
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

// Rank orders risks for comparisons and exit codes. Unknown risks rank
// below Low.
func (r Risk) Rank() int {
	switch r {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether r is one of the three known grades.
func (r Risk) Valid() bool {
	return r.Rank() > 0
}

// ParseRisk normalizes analyzer output ("high", "HIGH", " High ") to a
// Risk. Unknown values come back as RiskMedium with ok false, so a sloppy
// model answer still renders somewhere sensible.
func ParseRisk(s string) (Risk, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, true
	case "medium", "moderate":
		return RiskMedium, true
	case "high", "critical":
		return RiskHigh, true
	default:
		return RiskMedium, false
	}
}

// Finding is one security issue reported by an analyzer. Line anchors it to
// a 1-based source line; zero or negative means the finding applies to the
// document as a whole and never enters the line index, though it stays a
// valid list entry. Everything beyond ID, Line, and Reason is presentation
// payload the engine passes through untouched.
type Finding struct {
	ID         string `json:"id"`
	Line       int    `json:"line"`
	Risk       Risk   `json:"risk"`
	Reason     string `json:"reason"`
	Title      string `json:"title"`
	Detail     string `json:"detail,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PatternBased reports whether the finding came from a known security
// pattern rather than a model heuristic. Pattern findings outrank
// heuristics when several findings anchor to the same line.
func (f Finding) PatternBased() bool {
	return strings.Contains(strings.ToLower(f.Reason), "pattern")
}

// Anchored reports whether the finding points at a concrete line.
func (f Finding) Anchored() bool {
	return f.Line > 0
}
