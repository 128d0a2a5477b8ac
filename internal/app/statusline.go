package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"glint/internal/finding"
	"glint/internal/ui/styles"
)

// statusSep joins the status bar segments.
const statusSep = " · "

// statusView renders the one-line bar under the panes: identity and
// activity on the left, the finding tally and scroll position on the
// right.
func (m Model) statusView() string {
	left := []string{"glint"}
	if m.sourceName != "" {
		left = append(left, m.sourceName)
	}
	if m.language != "" {
		left = append(left, m.language)
	}
	switch {
	case m.analyzing:
		left = append(left, m.spinner.View()+" analyzing")
	case m.analyzerName != "":
		left = append(left, m.analyzerName)
	}
	if m.watcherHandle != nil {
		left = append(left, "watching")
	}
	if m.statusErr != "" {
		left = append(left, lipgloss.NewStyle().
			Foreground(styles.StatusErrorColor).
			Render("✗ "+m.statusErr))
	}

	var high, medium, low int
	for _, f := range m.session.Findings() {
		switch f.Risk {
		case finding.RiskHigh:
			high++
		case finding.RiskMedium:
			medium++
		default:
			low++
		}
	}

	right := []string{styles.FormatRiskTally(high, medium, low)}
	if fixed := len(m.session.Fixed()); fixed > 0 {
		right = append(right, fmt.Sprintf("%d fixed", fixed))
	}
	right = append(right, fmt.Sprintf("%d%%", int(m.viewer.ScrollPercent()*100)))

	leftStr := strings.Join(left, statusSep)
	rightStr := strings.Join(right, statusSep)

	// StatusBarStyle pads one cell each side.
	avail := m.width - 2
	gap := avail - segmentWidth(leftStr) - segmentWidth(rightStr)
	if gap < 1 {
		leftStr = ansi.Truncate(leftStr, max(avail-segmentWidth(rightStr)-1, 0), "…")
		gap = max(avail-segmentWidth(leftStr)-segmentWidth(rightStr), 1)
	}

	return styles.StatusBarStyle.Render(leftStr + strings.Repeat(" ", gap) + rightStr)
}

// segmentWidth measures a status segment in terminal cells. Styled
// segments are stripped first so escape codes do not count.
func segmentWidth(s string) int {
	return uniseg.StringWidth(ansi.Strip(s))
}
