package viewer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/annotate"
	"glint/internal/finding"
	"glint/internal/syntax"
)

// tenLineEngine builds a snapshot over a 10-line document: "line 1"
// through "line 10".
func tenLineEngine(t *testing.T, findings []finding.Finding) *annotate.Engine {
	t.Helper()
	reg, err := syntax.NewDefaultRegistry()
	require.NoError(t, err)
	profile, ok := reg.Get(syntax.ProfileCLike)
	require.True(t, ok)

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return annotate.NewEngine(strings.Join(lines, "\n"), profile, finding.BuildIndex(findings))
}

func TestView_EmptyBeforeEngine(t *testing.T) {
	m := New()
	m.SetSize(40, 5)

	assert.Empty(t, m.View())
	assert.Equal(t, 0, m.TotalLines())
}

func TestView_RendersOnlyVisibleWindow(t *testing.T) {
	m := New()
	m.SetSize(40, 3)
	m.SetEngine(tenLineEngine(t, nil))

	view := m.View()
	rendered := strings.Split(view, "\n")

	assert.Len(t, rendered, 3)
	assert.Contains(t, view, "line 1")
	assert.Contains(t, view, "line 3")
	assert.NotContains(t, view, "line 4")
}

func TestView_GutterNumbersAndSeparator(t *testing.T) {
	m := New()
	m.SetSize(40, 3)
	m.SetEngine(tenLineEngine(t, nil))

	view := m.View()
	assert.Contains(t, view, "1 │ line 1")
	assert.Contains(t, view, "2 │ line 2")
}

func TestView_GutterDisabled(t *testing.T) {
	m := New()
	m.SetSize(40, 3)
	m.SetEngine(tenLineEngine(t, nil))
	m.SetShowGutter(false)

	assert.NotContains(t, m.View(), "│")
}

func TestScroll_Clamps(t *testing.T) {
	m := New()
	m.SetSize(40, 3)
	m.SetEngine(tenLineEngine(t, nil))

	m.ScrollDown(100)
	assert.Equal(t, 7, m.YOffset(), "should clamp to total-height")
	assert.True(t, m.AtBottom())

	m.ScrollUp(100)
	assert.Equal(t, 0, m.YOffset())
	assert.True(t, m.AtTop())
}

func TestScroll_ShortDocumentNeverScrolls(t *testing.T) {
	m := New()
	m.SetSize(40, 20)
	m.SetEngine(tenLineEngine(t, nil))

	m.ScrollDown(5)
	assert.Equal(t, 0, m.YOffset())
	assert.True(t, m.AtTop())
	assert.True(t, m.AtBottom())
	assert.Zero(t, m.ScrollPercent())
}

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		line       int
		wantOffset int
		wantMoved  bool
	}{
		{"below window scrolls down", 0, 8, 5, true},
		{"above window scrolls up", 5, 2, 1, true},
		{"already visible stays put", 2, 4, 2, false},
		{"past end clamps to bottom", 0, 99, 7, true},
		{"before start clamps to top", 5, -3, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.SetSize(40, 3)
			m.SetEngine(tenLineEngine(t, nil))
			m.ScrollDown(tt.start)

			moved := m.EnsureVisible(tt.line)

			assert.Equal(t, tt.wantMoved, moved)
			assert.Equal(t, tt.wantOffset, m.YOffset())
		})
	}
}

func TestEnsureVisible_NoEngine(t *testing.T) {
	m := New()
	m.SetSize(40, 3)

	assert.False(t, m.EnsureVisible(1))
}

func TestVisibleLines(t *testing.T) {
	m := New()
	m.SetSize(40, 3)
	m.SetEngine(tenLineEngine(t, nil))

	first, last, ok := m.VisibleLines()
	require.True(t, ok)
	assert.Equal(t, 1, first)
	assert.Equal(t, 3, last)

	m.GotoBottom()
	first, last, ok = m.VisibleLines()
	require.True(t, ok)
	assert.Equal(t, 8, first)
	assert.Equal(t, 10, last)
}

func TestSetEngine_KeepsScrollClamped(t *testing.T) {
	m := New()
	m.SetSize(40, 3)
	m.SetEngine(tenLineEngine(t, nil))
	m.GotoBottom()
	require.Equal(t, 7, m.YOffset())

	reg, err := syntax.NewDefaultRegistry()
	require.NoError(t, err)
	profile, ok := reg.Get(syntax.ProfileCLike)
	require.True(t, ok)
	m.SetEngine(annotate.NewEngine("just one line", profile, finding.BuildIndex(nil)))

	assert.Equal(t, 0, m.YOffset())
}

func TestRenderLine_AnnotatedLineCarriesRiskMarker(t *testing.T) {
	m := New()
	m.SetSize(40, 3)

	d := annotate.LineDescriptor{
		Line:     1,
		Tokens:   []syntax.Token{{Text: "eval(x)", Class: syntax.ClassCall}},
		HasIssue: true,
		Risk:     finding.RiskHigh,
		IssueID:  "f-1",
	}

	assert.Contains(t, m.renderLine(d, 3), riskMarker)
}

func TestRenderLine_FixedLineDropsMarker(t *testing.T) {
	m := New()
	m.SetSize(40, 3)

	d := annotate.LineDescriptor{
		Line:     1,
		Tokens:   []syntax.Token{{Text: "eval(x)", Class: syntax.ClassCall}},
		HasIssue: true,
		Fixed:    true,
		Risk:     finding.RiskHigh,
	}

	assert.NotContains(t, m.renderLine(d, 3), riskMarker)
}

func TestRenderLine_TruncatesToPaneWidth(t *testing.T) {
	m := New()
	m.SetSize(20, 3)

	d := annotate.LineDescriptor{
		Line:   1,
		Tokens: []syntax.Token{{Text: strings.Repeat("x", 60), Class: syntax.ClassPlain}},
	}

	line := m.renderLine(d, 3)
	assert.LessOrEqual(t, lipgloss.Width(line), 20)
	assert.Contains(t, line, "…")
}

func TestRenderLine_PadsShortLines(t *testing.T) {
	m := New()
	m.SetSize(20, 3)

	d := annotate.LineDescriptor{
		Line:   1,
		Tokens: []syntax.Token{{Text: "hi", Class: syntax.ClassPlain}},
	}

	assert.Equal(t, 20, lipgloss.Width(m.renderLine(d, 3)))
}

func TestLineZoneID_RoundTrip(t *testing.T) {
	id := LineZoneID(42)

	line, ok := LineFromZoneID(id)
	require.True(t, ok)
	assert.Equal(t, 42, line)
}

func TestLineFromZoneID_RejectsForeignZones(t *testing.T) {
	_, ok := LineFromZoneID("findings-row:3")
	assert.False(t, ok)

	_, ok = LineFromZoneID("viewer-line:notanumber")
	assert.False(t, ok)
}
