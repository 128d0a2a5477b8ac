// Package viewer provides the annotated source pane: line numbers in a
// gutter, classified tokens in their highlight colors, and risk tints,
// selection, and fixed treatment driven entirely by line descriptors.
//
// Rendering is virtual: only the visible window of lines is styled per
// frame, so pasting a large file stays cheap no matter how far it scrolls.
package viewer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"glint/internal/annotate"
	"glint/internal/ui/styles"
)

// riskMarker is drawn in the gutter next to annotated lines.
const riskMarker = "▌"

// minNumberWidth keeps the gutter from jittering while short documents
// grow.
const minNumberWidth = 3

// Model is the source pane. It is a value component in the bubbles style:
// methods that change state are pointer receivers, View is read-only.
type Model struct {
	engine *annotate.Engine
	view   annotate.View

	offset int // first visible line, 0-based
	width  int
	height int

	showGutter bool
}

// New returns an empty viewer with the gutter enabled.
func New() Model {
	return Model{showGutter: true}
}

// SetEngine swaps in the snapshot for a new analysis cycle. The scroll
// position is kept where possible and clamped to the new document length.
func (m *Model) SetEngine(e *annotate.Engine) {
	m.engine = e
	m.clampOffset()
}

// SetView updates the selection and fixed state read during rendering.
func (m *Model) SetView(v annotate.View) {
	m.view = v
}

// SetSize updates the pane's content dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

// SetShowGutter toggles the line-number gutter.
func (m *Model) SetShowGutter(show bool) {
	m.showGutter = show
}

// TotalLines returns the line count of the current document, 0 before the
// first cycle.
func (m Model) TotalLines() int {
	if m.engine == nil {
		return 0
	}
	return m.engine.LineCount()
}

// YOffset returns the current scroll position as a 0-based line index.
func (m Model) YOffset() int {
	return m.offset
}

// ScrollUp scrolls up by n lines.
func (m *Model) ScrollUp(n int) {
	m.offset -= n
	m.clampOffset()
}

// ScrollDown scrolls down by n lines.
func (m *Model) ScrollDown(n int) {
	m.offset += n
	m.clampOffset()
}

// HalfPageUp scrolls up by half the pane height.
func (m *Model) HalfPageUp() {
	m.ScrollUp(m.height / 2)
}

// HalfPageDown scrolls down by half the pane height.
func (m *Model) HalfPageDown() {
	m.ScrollDown(m.height / 2)
}

// GotoTop scrolls to the first line.
func (m *Model) GotoTop() {
	m.offset = 0
}

// GotoBottom scrolls so the last line is visible.
func (m *Model) GotoBottom() {
	m.offset = m.maxOffset()
}

// AtTop reports whether the first line is visible.
func (m Model) AtTop() bool {
	return m.offset == 0
}

// AtBottom reports whether the last line is visible.
func (m Model) AtBottom() bool {
	return m.offset >= m.maxOffset()
}

// ScrollPercent returns the scroll position in [0, 1]. Documents that fit
// entirely return 0.
func (m Model) ScrollPercent() float64 {
	maxOffset := m.maxOffset()
	if maxOffset <= 0 {
		return 0
	}
	return float64(m.offset) / float64(maxOffset)
}

// EnsureVisible scrolls the least amount needed to bring a 1-based source
// line into view. Out-of-range lines clamp to the nearest edge, so a
// finding anchored past the end of the document still scrolls to the
// bottom. Reports whether the viewport moved.
func (m *Model) EnsureVisible(line int) bool {
	total := m.TotalLines()
	if total == 0 {
		return false
	}

	idx := line - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= total {
		idx = total - 1
	}

	old := m.offset
	if idx < m.offset {
		m.offset = idx
	}
	if idx >= m.offset+m.height {
		m.offset = idx - m.height + 1
	}
	m.clampOffset()
	return m.offset != old
}

// VisibleLines returns the 1-based inclusive range of lines currently on
// screen. ok is false when nothing is rendered yet.
func (m Model) VisibleLines() (first, last int, ok bool) {
	total := m.TotalLines()
	if total == 0 || m.height <= 0 {
		return 0, 0, false
	}
	first = m.offset + 1
	last = min(m.offset+m.height, total)
	return first, last, true
}

// View renders the visible window. Each line is marked with a bubblezone
// zone so the app can resolve mouse clicks back to source lines; the root
// model is responsible for the zone.Scan pass.
func (m Model) View() string {
	total := m.TotalLines()
	if total == 0 || m.height <= 0 || m.width <= 0 {
		return ""
	}

	numWidth := m.numberWidth()
	end := min(m.offset+m.height, total)

	var sb strings.Builder
	sb.Grow(m.height * 64)
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			sb.WriteByte('\n')
		}
		d := m.engine.Descriptor(i+1, m.view)
		sb.WriteString(zone.Mark(LineZoneID(d.Line), m.renderLine(d, numWidth)))
	}
	return sb.String()
}

// renderLine styles one descriptor: gutter, then tokens, truncated and
// padded to the pane width so background tints span the full line.
func (m Model) renderLine(d annotate.LineDescriptor, numWidth int) string {
	var bg lipgloss.TerminalColor
	switch {
	case d.Selected:
		bg = styles.SelectionBgColor
	case d.HasIssue && !d.Fixed:
		bg = styles.LineBackground(d.Risk)
	}

	var sb strings.Builder
	contentWidth := m.width
	if m.showGutter {
		sb.WriteString(m.renderGutter(d, numWidth))
		contentWidth -= gutterWidth(numWidth)
	}
	if contentWidth < 1 {
		return sb.String()
	}

	var raw strings.Builder
	for _, tok := range d.Tokens {
		raw.WriteString(tok.Text)

		style := styles.ClassStyle(tok.Class)
		if d.Fixed {
			style = styles.FixedStyle
		}
		if bg != nil {
			style = style.Background(bg)
		}
		sb.WriteString(style.Render(tok.Text))
	}

	line := sb.String()
	if runewidth.StringWidth(raw.String()) > contentWidth {
		line = ansi.Truncate(line, m.width, "…")
	}

	if pad := m.width - lipgloss.Width(line); pad > 0 {
		padStyle := lipgloss.NewStyle()
		if bg != nil {
			padStyle = padStyle.Background(bg)
		}
		line += padStyle.Render(strings.Repeat(" ", pad))
	}
	return line
}

// renderGutter renders the risk marker, line number, and separator.
func (m Model) renderGutter(d annotate.LineDescriptor, numWidth int) string {
	marker := " "
	if d.HasIssue && !d.Fixed {
		marker = lipgloss.NewStyle().Foreground(styles.RiskColor(d.Risk)).Render(riskMarker)
	}

	numStyle := styles.GutterStyle
	if d.Selected {
		numStyle = styles.GutterSelectedStyle
	}
	number := numStyle.Render(padNumber(d.Line, numWidth))

	return marker + number + styles.GutterStyle.Render(" │ ")
}

// numberWidth returns the digit column width for the current document.
func (m Model) numberWidth() int {
	w := len(strconv.Itoa(max(m.TotalLines(), 1)))
	return max(w, minNumberWidth)
}

// gutterWidth is the full gutter footprint: marker, digits, separator.
func gutterWidth(numWidth int) int {
	return 1 + numWidth + 3
}

// padNumber right-aligns a line number within width columns.
func padNumber(n, width int) string {
	s := strconv.Itoa(n)
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// clampOffset keeps the scroll position inside [0, maxOffset].
func (m *Model) clampOffset() {
	if m.offset < 0 {
		m.offset = 0
	}
	if maxOffset := m.maxOffset(); m.offset > maxOffset {
		m.offset = maxOffset
	}
}

// maxOffset is the largest valid scroll position, 0 when the document fits.
func (m Model) maxOffset() int {
	total := m.TotalLines()
	if total <= m.height {
		return 0
	}
	return total - m.height
}
