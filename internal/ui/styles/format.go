package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"glint/internal/finding"
)

// TruncateString truncates a string to fit within maxWidth, adding an
// ellipsis if needed. Width is measured with lipgloss so wide runes count
// correctly.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	result := ""
	for _, r := range s {
		test := result + string(r)
		if lipgloss.Width(test) > maxWidth-3 {
			break
		}
		result = test
	}

	return result + "..."
}

// RiskBadge renders a styled [High] / [Medium] / [Low] marker.
func RiskBadge(r finding.Risk) string {
	return RiskStyle(r).Render("[" + string(r) + "]")
}

// FormatRiskTally summarizes finding counts per grade for the status bar,
// highest first. Zero-count grades are skipped; an all-zero tally returns
// "no findings".
func FormatRiskTally(high, medium, low int) string {
	parts := make([]string, 0, 3)
	if high > 0 {
		parts = append(parts, RiskHighStyle.Render(fmt.Sprintf("%d High", high)))
	}
	if medium > 0 {
		parts = append(parts, RiskMediumStyle.Render(fmt.Sprintf("%d Medium", medium)))
	}
	if low > 0 {
		parts = append(parts, RiskLowStyle.Render(fmt.Sprintf("%d Low", low)))
	}
	if len(parts) == 0 {
		return "no findings"
	}
	return strings.Join(parts, " ")
}
