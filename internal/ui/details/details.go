// Package details contains the finding detail pane: the selected finding's
// title and reason, its explanation rendered as markdown, and a word-level
// diff preview of the suggested fix against the flagged source line.
package details

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"glint/internal/finding"
	"glint/internal/ui/markdown"
	"glint/internal/ui/styles"
)

// Model holds the detail pane state. Setters return the updated model in
// the bubbles value style.
type Model struct {
	finding    finding.Finding
	sourceLine string
	hasFinding bool
	summary    string

	viewport      viewport.Model
	mdRenderer    *markdown.Renderer
	markdownStyle string
	width         int
	height        int
	ready         bool
}

// New creates an empty detail pane.
func New() Model {
	return Model{markdownStyle: "dark"}
}

// SetMarkdownStyle sets the markdown rendering style ("dark" or "light").
func (m Model) SetMarkdownStyle(style string) Model {
	m.markdownStyle = style
	// Clear renderer to force recreation with the new style.
	m.mdRenderer = nil
	return m.refresh()
}

// SetSize updates dimensions and initializes the viewport.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height

	if m.mdRenderer == nil || m.mdRenderer.Width() != width {
		if r, err := markdown.New(width, m.markdownStyle); err == nil {
			m.mdRenderer = r
		}
	}

	if !m.ready {
		m.viewport = viewport.New(width, max(height, 1))
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = max(height, 1)
	}
	return m.refresh()
}

// SetFinding shows a finding. sourceLine is the flagged line's text, used
// for the suggested-fix preview; pass "" for unanchored findings.
func (m Model) SetFinding(f finding.Finding, sourceLine string) Model {
	m.finding = f
	m.sourceLine = sourceLine
	m.hasFinding = true
	m = m.refresh()
	if m.ready {
		m.viewport.GotoTop()
	}
	return m
}

// ClearFinding empties the pane. The cycle summary, if any, shows in its
// place.
func (m Model) ClearFinding() Model {
	m.finding = finding.Finding{}
	m.sourceLine = ""
	m.hasFinding = false
	return m.refresh()
}

// SetSummary sets the analysis cycle summary shown while no finding is
// selected.
func (m Model) SetSummary(s string) Model {
	m.summary = s
	return m.refresh()
}

// ScrollUp scrolls the pane content up by n lines.
func (m Model) ScrollUp(n int) Model {
	if m.ready {
		m.viewport.ScrollUp(n)
	}
	return m
}

// ScrollDown scrolls the pane content down by n lines.
func (m Model) ScrollDown(n int) Model {
	if m.ready {
		m.viewport.ScrollDown(n)
	}
	return m
}

// GotoTop scrolls to the start of the content.
func (m Model) GotoTop() Model {
	if m.ready {
		m.viewport.GotoTop()
	}
	return m
}

// GotoBottom scrolls to the end of the content.
func (m Model) GotoBottom() Model {
	if m.ready {
		m.viewport.GotoBottom()
	}
	return m
}

// ScrollPercent returns the viewport scroll position in [0, 1].
func (m Model) ScrollPercent() float64 {
	if !m.ready {
		return 0
	}
	return m.viewport.ScrollPercent()
}

// View renders the pane.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	return m.viewport.View()
}

// refresh rebuilds the viewport content from the current finding.
func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	if !m.hasFinding {
		placeholder := "Select a finding to see details."
		if m.summary != "" {
			placeholder = m.summary
		}
		m.viewport.SetContent(styles.HelpStyle.Render(wordwrap.String(placeholder, max(m.width, 1))))
		return m
	}
	m.viewport.SetContent(m.renderContent())
	return m
}

// renderContent lays out the header, explanation, and fix preview.
func (m Model) renderContent() string {
	width := max(m.width, 1)
	var sections []string

	title := lipgloss.NewStyle().Bold(true).Render(m.finding.Title)
	sections = append(sections, wordwrap.String(styles.RiskBadge(m.finding.Risk)+" "+title, width))

	anchor := "Whole document"
	if m.finding.Anchored() {
		anchor = fmt.Sprintf("Line %d", m.finding.Line)
	}
	sections = append(sections, styles.HelpStyle.Render(wordwrap.String(anchor+" · "+m.finding.Reason, width)))

	if m.finding.Detail != "" {
		sections = append(sections, "", m.renderDetail(width))
	}

	if m.finding.Suggestion != "" {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Bold(true).Render("Suggested fix"),
			m.renderFixPreview(width),
		)
	}

	return strings.Join(sections, "\n")
}

// renderDetail renders the explanation markdown, falling back to wrapped
// plain text when glamour cannot parse it.
func (m Model) renderDetail(width int) string {
	if m.mdRenderer != nil {
		if out, err := m.mdRenderer.Render(m.finding.Detail); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return wordwrap.String(m.finding.Detail, width)
}

// renderFixPreview renders the original line and its replacement with
// word-level change highlighting, git style: a "-" line and a "+" line.
func (m Model) renderFixPreview(width int) string {
	oldSegs, newSegs := diffLine(m.sourceLine, m.finding.Suggestion)

	var lines []string
	if len(oldSegs) > 0 {
		lines = append(lines, renderSegments("- ", oldSegs, styles.DiffDeletionColor))
	}
	if len(newSegs) > 0 {
		lines = append(lines, renderSegments("+ ", newSegs, styles.DiffAdditionColor))
	}
	return strings.Join(lines, "\n")
}

// renderSegments styles one preview line. Changed segments get the accent
// color plus bold; unchanged text stays muted so the change pops.
func renderSegments(prefix string, segs []segment, accent lipgloss.AdaptiveColor) string {
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Foreground(accent).Render(prefix))
	for _, s := range segs {
		switch s.kind {
		case segmentUnchanged:
			sb.WriteString(styles.HelpStyle.Render(s.text))
		default:
			sb.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(s.text))
		}
	}
	return sb.String()
}
