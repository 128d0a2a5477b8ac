package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/finding"
)

func TestBeginCycle_ReplacesSnapshot(t *testing.T) {
	s := New()

	s.BeginCycle("eval(x)", []finding.Finding{
		{ID: "f1", Line: 1, Reason: "Known high-risk pattern: eval()"},
	})

	assert.Equal(t, "eval(x)", s.Document())
	require.Len(t, s.Findings(), 1)
	assert.True(t, s.Index().Has(1))
}

func TestBeginCycle_ResetsCursorAndFixedTogether(t *testing.T) {
	s := New()
	s.BeginCycle("doc one", []finding.Finding{{ID: "f1", Line: 1, Reason: "x"}})
	s.Select("f1")
	s.MarkFixed("f1")

	s.BeginCycle("doc two", []finding.Finding{{ID: "f2", Line: 1, Reason: "x"}})

	assert.Empty(t, s.Selected())
	assert.Empty(t, s.Fixed())
}

func TestBeginCycle_SameDocumentResetsStateToo(t *testing.T) {
	s := New()
	s.BeginCycle("same doc", []finding.Finding{{ID: "f1", Line: 1, Reason: "x"}})
	s.Select("f1")
	s.MarkFixed("f1")

	// Re-analyzing unchanged source is still a fresh cycle.
	s.BeginCycle("same doc", []finding.Finding{{ID: "f1", Line: 1, Reason: "x"}})

	assert.Empty(t, s.Selected())
	assert.Empty(t, s.Fixed())
	assert.False(t, s.CanUndo())
}

func TestUndo_RestoresPreviousDocument(t *testing.T) {
	s := New()
	s.BeginCycle("first version", nil)
	s.BeginCycle("second version", []finding.Finding{{ID: "f1", Line: 1, Reason: "x"}})
	require.True(t, s.CanUndo())

	doc, ok := s.Undo()

	require.True(t, ok)
	assert.Equal(t, "first version", doc)
	assert.Equal(t, "first version", s.Document())
	assert.Empty(t, s.Findings())
	assert.Equal(t, 0, s.Index().Len())
	assert.False(t, s.CanUndo())
}

func TestUndo_EmptyHistory(t *testing.T) {
	s := New()

	_, ok := s.Undo()
	assert.False(t, ok)

	s.BeginCycle("only version", nil)
	_, ok = s.Undo()
	assert.False(t, ok)
}

func TestUndo_ThenReanalyzeDoesNotLoop(t *testing.T) {
	s := New()
	s.BeginCycle("v1", nil)
	s.BeginCycle("v2", nil)

	doc, ok := s.Undo()
	require.True(t, ok)
	require.Equal(t, "v1", doc)

	// Re-analyzing the restored document must not push it back onto the
	// history, or undo would bounce between two versions forever.
	s.BeginCycle("v1", []finding.Finding{{ID: "f1", Line: 1, Reason: "x"}})
	assert.False(t, s.CanUndo())
}

func TestHistory_Bounded(t *testing.T) {
	s := New()
	s.historyLimit = 3

	for i := 0; i <= 5; i++ {
		s.BeginCycle(fmt.Sprintf("version %d", i), nil)
	}

	// Only the newest three snapshots survive.
	for _, expected := range []string{"version 4", "version 3", "version 2"} {
		doc, ok := s.Undo()
		require.True(t, ok)
		assert.Equal(t, expected, doc)
	}
	assert.False(t, s.CanUndo())
}

func TestSelection(t *testing.T) {
	s := New()
	s.BeginCycle("doc", []finding.Finding{{ID: "f1", Line: 1, Reason: "x"}})

	s.Select("f1")
	assert.Equal(t, "f1", s.Selected())

	s.ClearSelection()
	assert.Empty(t, s.Selected())
}

func TestFixedSet(t *testing.T) {
	s := New()
	s.BeginCycle("doc", nil)

	s.MarkFixed("f1")
	assert.True(t, s.Fixed()["f1"])

	s.Unfix("f1")
	assert.False(t, s.Fixed()["f1"])

	assert.True(t, s.ToggleFixed("f2"))
	assert.False(t, s.ToggleFixed("f2"))
	assert.Empty(t, s.Fixed())
}

func TestView_SnapshotIsDetached(t *testing.T) {
	s := New()
	s.BeginCycle("doc", []finding.Finding{{ID: "f1", Line: 1, Reason: "x"}})
	s.Select("f1")
	s.MarkFixed("f1")

	v := s.View()
	assert.Equal(t, "f1", v.SelectedID)
	assert.True(t, v.Fixed["f1"])

	// Mutating the returned view must not write through to the session.
	v.Fixed["f2"] = true
	assert.False(t, s.Fixed()["f2"])
}

func TestFindings_ReturnsCopy(t *testing.T) {
	s := New()
	s.BeginCycle("doc", []finding.Finding{{ID: "f1", Line: 1, Reason: "x"}})

	got := s.Findings()
	got[0].ID = "mutated"

	assert.Equal(t, "f1", s.Findings()[0].ID)
}
