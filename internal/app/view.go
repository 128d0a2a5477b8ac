package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"glint/internal/ui/styles"
)

// View renders the three panes, the status bar, and any active overlay.
// The zone scan runs exactly once here, over the final composed frame.
func (m Model) View() string {
	if !m.ready {
		return ""
	}

	code := zone.Mark(zonePaneViewer, styles.RenderPane(
		m.viewer.View(), m.codeTitle(), m.leftWidth, m.contentHeight, m.focus == focusViewer))

	list := zone.Mark(zonePaneList, styles.RenderPane(
		m.list.View(), fmt.Sprintf("Findings (%d)", m.list.Count()), m.rightWidth, m.listHeight, m.focus == focusList))

	detail := zone.Mark(zonePaneDetails, styles.RenderPane(
		m.details.View(), "Detail", m.rightWidth, m.detailsHeight, m.focus == focusDetails))

	right := lipgloss.JoinVertical(lipgloss.Left, list, detail)
	view := lipgloss.JoinHorizontal(lipgloss.Top, code, right)

	if m.showStatus {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.statusView())
	}

	if m.showHelp {
		view = m.help.Overlay(view)
	}
	view = m.logOverlay.Overlay(view)

	return zone.Scan(view)
}

// codeTitle labels the source pane with the loaded snippet or file name.
func (m Model) codeTitle() string {
	if m.sourceName != "" {
		return m.sourceName
	}
	return "Code"
}
