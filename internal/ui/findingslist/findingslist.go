// Package findingslist provides the findings pane: one row per finding
// with its risk badge, line anchor, and title. The session owns the
// selection cursor; this component renders it and answers next/previous
// queries for the navigation keys.
package findingslist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"glint/internal/finding"
	"glint/internal/ui/styles"
)

// Model is the findings pane. Scroll state follows the selected row.
type Model struct {
	findings []finding.Finding
	fixed    map[string]bool
	selected string

	offset int
	width  int
	height int
}

// New returns an empty list.
func New() Model {
	return Model{}
}

// SetFindings replaces the rows with a new snapshot, in analyzer order.
// The scroll position resets with it.
func (m *Model) SetFindings(fs []finding.Finding) {
	m.findings = append([]finding.Finding(nil), fs...)
	m.offset = 0
}

// SetFixed updates the remediated set rendered with a check mark.
func (m *Model) SetFixed(fixed map[string]bool) {
	m.fixed = fixed
}

// SetSelected moves the rendered cursor to the row carrying id and scrolls
// it into view. An unknown or empty id leaves no row highlighted.
func (m *Model) SetSelected(id string) {
	m.selected = id
	if idx, ok := m.indexOf(id); ok {
		m.ensureVisible(idx)
	}
}

// SetSize updates the pane's content dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

// Count returns the number of rows.
func (m Model) Count() int {
	return len(m.findings)
}

// Current returns the finding under the cursor.
func (m Model) Current() (finding.Finding, bool) {
	if idx, ok := m.indexOf(m.selected); ok {
		return m.findings[idx], true
	}
	return finding.Finding{}, false
}

// Next returns the finding after the cursor, wrapping at the end. With no
// cursor it returns the first finding. ok is false only when the list is
// empty.
func (m Model) Next() (finding.Finding, bool) {
	if len(m.findings) == 0 {
		return finding.Finding{}, false
	}
	idx, ok := m.indexOf(m.selected)
	if !ok {
		return m.findings[0], true
	}
	return m.findings[(idx+1)%len(m.findings)], true
}

// Prev returns the finding before the cursor, wrapping at the start. With
// no cursor it returns the last finding. ok is false only when the list is
// empty.
func (m Model) Prev() (finding.Finding, bool) {
	if len(m.findings) == 0 {
		return finding.Finding{}, false
	}
	idx, ok := m.indexOf(m.selected)
	if !ok {
		return m.findings[len(m.findings)-1], true
	}
	return m.findings[(idx-1+len(m.findings))%len(m.findings)], true
}

// FindingAt returns the finding at a row index, for resolving zone clicks.
func (m Model) FindingAt(index int) (finding.Finding, bool) {
	if index < 0 || index >= len(m.findings) {
		return finding.Finding{}, false
	}
	return m.findings[index], true
}

// VisibleRows returns the inclusive range of row indexes on screen. ok is
// false when the list is empty or unsized.
func (m Model) VisibleRows() (first, last int, ok bool) {
	if len(m.findings) == 0 || m.height <= 0 {
		return 0, 0, false
	}
	first = m.offset
	last = min(m.offset+m.height, len(m.findings)) - 1
	return first, last, true
}

// View renders the visible rows. Empty lists render a muted placeholder.
func (m Model) View() string {
	if len(m.findings) == 0 {
		return styles.HelpStyle.Render("No findings.")
	}
	if m.height <= 0 || m.width <= 0 {
		return ""
	}

	end := min(m.offset+m.height, len(m.findings))
	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, zone.Mark(RowZoneID(i), m.renderRow(m.findings[i])))
	}
	return strings.Join(rows, "\n")
}

// renderRow renders one finding: cursor prefix, risk badge, line anchor,
// title.
func (m Model) renderRow(f finding.Finding) string {
	prefix := "  "
	if f.ID == m.selected {
		prefix = styles.SelectionIndicatorStyle.Render(">") + " "
	}

	anchor := "doc"
	if f.Anchored() {
		anchor = fmt.Sprintf("L%d", f.Line)
	}

	badge := styles.RiskBadge(f.Risk)
	meta := styles.GutterStyle.Render(anchor)

	// Badge and anchor widths vary with the grade, so measure what is
	// already rendered rather than guessing.
	used := 2 + lipgloss.Width(badge) + 1 + lipgloss.Width(meta) + 1
	title := styles.TruncateString(f.Title, max(m.width-used, 1))
	if m.fixed[f.ID] {
		title = styles.FixedStyle.Render(title) + " ✓"
	}

	return prefix + badge + " " + meta + " " + title
}

// indexOf resolves a finding ID to its row index.
func (m Model) indexOf(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	for i, f := range m.findings {
		if f.ID == id {
			return i, true
		}
	}
	return 0, false
}

// ensureVisible scrolls the row at idx into the window.
func (m *Model) ensureVisible(idx int) {
	if m.height <= 0 {
		return
	}
	if idx < m.offset {
		m.offset = idx
	}
	if idx >= m.offset+m.height {
		m.offset = idx - m.height + 1
	}
	m.clampOffset()
}

// clampOffset keeps the scroll position inside the list.
func (m *Model) clampOffset() {
	maxOffset := len(m.findings) - m.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
