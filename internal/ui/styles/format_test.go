package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"glint/internal/finding"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "Hello", 10, "Hello"},
		{"exact", "Hello", 5, "Hello"},
		{"truncate", "Hello World", 8, "Hello..."},
		{"very short", "Hello", 3, "..."},
		{"minimal", "Hello", 1, "."},
		{"zero", "Hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxWidth)
			assert.Equal(t, tt.want, got, "TruncateString(%q, %d)", tt.input, tt.maxWidth)
		})
	}
}

func TestRiskBadge(t *testing.T) {
	assert.Contains(t, RiskBadge(finding.RiskHigh), "[High]")
	assert.Contains(t, RiskBadge(finding.RiskMedium), "[Medium]")
	assert.Contains(t, RiskBadge(finding.RiskLow), "[Low]")
}

func TestFormatRiskTally(t *testing.T) {
	tests := []struct {
		name              string
		high, medium, low int
		contains          []string
		excludes          []string
	}{
		{"all grades", 2, 1, 3, []string{"2 High", "1 Medium", "3 Low"}, nil},
		{"skips zero grades", 1, 0, 0, []string{"1 High"}, []string{"Medium", "Low"}},
		{"empty", 0, 0, 0, []string{"no findings"}, []string{"High"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRiskTally(tt.high, tt.medium, tt.low)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, not := range tt.excludes {
				assert.NotContains(t, got, not)
			}
		})
	}
}
