package details

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/finding"
)

func highFinding() finding.Finding {
	return finding.Finding{
		ID:         "f-1",
		Line:       3,
		Risk:       finding.RiskHigh,
		Reason:     "Known high-risk pattern: eval()",
		Title:      "eval on request body",
		Detail:     "Evaluating request input executes attacker-controlled code. Parse it instead.",
		Suggestion: "JSON.parse(req.body)",
	}
}

func TestView_EmptyBeforeSize(t *testing.T) {
	m := New()
	assert.Empty(t, m.View())
}

func TestView_PlaceholderWithoutFinding(t *testing.T) {
	m := New().SetSize(60, 10)
	assert.Contains(t, m.View(), "Select a finding")
}

func TestSetFinding_RendersHeader(t *testing.T) {
	m := New().SetSize(60, 20)
	m = m.SetFinding(highFinding(), "eval(req.body)")

	view := m.View()
	assert.Contains(t, view, "[High]")
	assert.Contains(t, view, "eval on request body")
	assert.Contains(t, view, "Line 3")
	assert.Contains(t, view, "Known high-risk pattern")
}

func TestSetFinding_UnanchoredShowsWholeDocument(t *testing.T) {
	f := highFinding()
	f.Line = 0

	m := New().SetSize(60, 20)
	m = m.SetFinding(f, "")

	assert.Contains(t, m.View(), "Whole document")
}

func TestSetFinding_RendersDetailProse(t *testing.T) {
	m := New().SetSize(60, 20)
	m = m.SetFinding(highFinding(), "eval(req.body)")

	assert.Contains(t, m.View(), "attacker")
}

func TestSetFinding_RendersFixPreview(t *testing.T) {
	m := New().SetSize(60, 20)
	m = m.SetFinding(highFinding(), "eval(req.body)")

	view := m.View()
	assert.Contains(t, view, "Suggested fix")
	assert.Contains(t, view, "- ")
	assert.Contains(t, view, "+ ")
	assert.Contains(t, view, "JSON")
}

func TestSetFinding_NoSuggestionSkipsPreview(t *testing.T) {
	f := highFinding()
	f.Suggestion = ""

	m := New().SetSize(60, 20)
	m = m.SetFinding(f, "eval(req.body)")

	assert.NotContains(t, m.View(), "Suggested fix")
}

func TestClearFinding_RestoresPlaceholder(t *testing.T) {
	m := New().SetSize(60, 20)
	m = m.SetFinding(highFinding(), "eval(req.body)")
	require.NotContains(t, m.View(), "Select a finding")

	m = m.ClearFinding()
	assert.Contains(t, m.View(), "Select a finding")
}

func TestSetSummary_ShowsWhileNothingSelected(t *testing.T) {
	m := New().SetSize(60, 20)
	m = m.SetSummary("Reviewed 40 lines; no injection risks found.")

	assert.Contains(t, m.View(), "no injection risks")
}

func TestSetSummary_FindingTakesPrecedence(t *testing.T) {
	m := New().SetSize(60, 20)
	m = m.SetSummary("Clean scan.")
	m = m.SetFinding(highFinding(), "eval(req.body)")
	require.NotContains(t, m.View(), "Clean scan.")

	m = m.ClearFinding()
	assert.Contains(t, m.View(), "Clean scan.")
}

func TestScroll_MovesThroughLongContent(t *testing.T) {
	f := highFinding()
	f.Detail = strings.Repeat("Each repetition pads the explanation out by another line.\n\n", 30)

	m := New().SetSize(40, 5)
	m = m.SetFinding(f, "eval(req.body)")
	require.Zero(t, m.ScrollPercent())

	m = m.ScrollDown(10)
	assert.Greater(t, m.ScrollPercent(), 0.0)

	m = m.ScrollUp(100)
	assert.Zero(t, m.ScrollPercent())

	m = m.GotoBottom()
	assert.InDelta(t, 1.0, m.ScrollPercent(), 0.001)

	m = m.GotoTop()
	assert.Zero(t, m.ScrollPercent())
}
