package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/finding"
)

func TestBuilder_SavesCyclesInOrder(t *testing.T) {
	db := NewTestDB(t)
	base := time.Now().Truncate(time.Second)

	NewBuilder(t, db).
		WithCycle("old", WithCreatedAt(base.Add(-time.Hour))).
		WithCycle("new", WithCreatedAt(base), WithFinding(finding.Finding{
			ID: "f1", Line: 3, Risk: finding.RiskMedium, Reason: "Known high-risk pattern: exec",
		})).
		Build()

	cycles, err := db.ReviewRepository().ListRecent(0)
	require.NoError(t, err)
	require.Len(t, cycles, 2)
	assert.Equal(t, "new", cycles[0].ID)
	assert.Equal(t, "old", cycles[1].ID)
	assert.Equal(t, finding.RiskMedium, cycles[0].MaxRisk)
}

func TestPresets(t *testing.T) {
	db := NewTestDB(t)

	NewBuilder(t, db).
		WithCycle("flagged", FlaggedCycle()...).
		WithCycle("clean", CleanCycle()...).
		Build()

	flagged, err := db.ReviewRepository().FindByID("flagged")
	require.NoError(t, err)
	require.Len(t, flagged.Findings, 1)
	assert.Equal(t, finding.RiskHigh, flagged.MaxRisk)

	clean, err := db.ReviewRepository().FindByID("clean")
	require.NoError(t, err)
	assert.Empty(t, clean.Findings)
	assert.Empty(t, string(clean.MaxRisk))
}
