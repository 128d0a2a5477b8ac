package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"glint/internal/finding"
)

// setupTestRepo creates a file-backed DB in a temp dir and returns its
// repository. The DB is closed when the test completes.
func setupTestRepo(t *testing.T) *ReviewRepository {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "glint.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.ReviewRepository()
}

func sampleCycle(id string, created time.Time) *Cycle {
	return &Cycle{
		ID:       id,
		Digest:   "digest-" + id,
		Language: "python",
		Analyzer: "local",
		Summary:  "Pattern scan matched 1 known issue(s), 1 high risk.",
		Source:   "eval(user_input)",
		Findings: []finding.Finding{
			{
				ID:         "f-" + id,
				Line:       1,
				Risk:       finding.RiskHigh,
				Reason:     "Known high-risk pattern: eval()",
				Title:      "Dynamic code execution",
				Suggestion: "Parse the data instead of executing it.",
			},
		},
		MaxRisk:   finding.RiskHigh,
		CreatedAt: created,
	}
}

func TestReviewRepository_SaveAndFindByID(t *testing.T) {
	repo := setupTestRepo(t)
	now := time.Now().Truncate(time.Second)

	saved := sampleCycle("c1", now)
	require.NoError(t, repo.Save(saved))

	got, err := repo.FindByID("c1")
	require.NoError(t, err)

	assert.Equal(t, saved.Digest, got.Digest)
	assert.Equal(t, saved.Language, got.Language)
	assert.Equal(t, saved.Analyzer, got.Analyzer)
	assert.Equal(t, saved.Summary, got.Summary)
	assert.Equal(t, saved.Source, got.Source)
	assert.Equal(t, saved.MaxRisk, got.MaxRisk)
	assert.True(t, got.CreatedAt.Equal(now))
	require.Len(t, got.Findings, 1)
	assert.Equal(t, saved.Findings[0], got.Findings[0])
}

func TestReviewRepository_SaveFillsDefaults(t *testing.T) {
	repo := setupTestRepo(t)

	c := &Cycle{Digest: "d", Source: "x = 1"}
	require.NoError(t, repo.Save(c))

	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := repo.FindByID(c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Findings)
}

func TestReviewRepository_FindByID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByID("missing")
	require.ErrorIs(t, err, ErrCycleNotFound)
}

func TestReviewRepository_FindByDigest_ReturnsLatest(t *testing.T) {
	repo := setupTestRepo(t)
	base := time.Now().Truncate(time.Second)

	older := sampleCycle("old", base.Add(-time.Hour))
	older.Digest = "shared"
	newer := sampleCycle("new", base)
	newer.Digest = "shared"
	require.NoError(t, repo.Save(older))
	require.NoError(t, repo.Save(newer))

	got, err := repo.FindByDigest("shared")
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)

	_, err = repo.FindByDigest("never-seen")
	require.ErrorIs(t, err, ErrCycleNotFound)
}

func TestReviewRepository_ListRecent(t *testing.T) {
	repo := setupTestRepo(t)
	base := time.Now().Truncate(time.Second)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(sampleCycle(id, base.Add(time.Duration(i)*time.Minute))))
	}

	cycles, err := repo.ListRecent(0)
	require.NoError(t, err)
	require.Len(t, cycles, 3)
	assert.Equal(t, "c", cycles[0].ID)
	assert.Equal(t, "b", cycles[1].ID)
	assert.Equal(t, "a", cycles[2].ID)

	limited, err := repo.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "c", limited[0].ID)
}

func TestReviewRepository_ListRecent_Empty(t *testing.T) {
	repo := setupTestRepo(t)

	cycles, err := repo.ListRecent(10)
	require.NoError(t, err)
	assert.Empty(t, cycles)
}

func TestReviewRepository_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	require.NoError(t, repo.Save(sampleCycle("c1", time.Now())))

	require.NoError(t, repo.Delete("c1"))

	_, err := repo.FindByID("c1")
	require.ErrorIs(t, err, ErrCycleNotFound)

	require.ErrorIs(t, repo.Delete("c1"), ErrCycleNotFound)
}

// ===== Property-Based Tests (using pgregory.net/rapid) =====

func TestProperty_CycleRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)

	rapid.Check(t, func(rt *rapid.T) {
		c := &Cycle{
			ID:       rapid.StringMatching(`cycle-[0-9a-f]{12}`).Draw(rt, "id"),
			Digest:   rapid.StringMatching(`[0-9a-f]{16}`).Draw(rt, "digest"),
			Language: rapid.SampledFrom([]string{"clike", "python", ""}).Draw(rt, "language"),
			Analyzer: "local",
			Summary:  rapid.StringOf(rapid.RuneFrom([]rune("abc \"'\\\n\t💡"))).Draw(rt, "summary"),
			Source:   rapid.StringOf(rapid.RuneFrom([]rune("xyz=();\n\"'"))).Draw(rt, "source"),
			Findings: []finding.Finding{
				{
					ID:     rapid.StringMatching(`f-[0-9a-f]{8}`).Draw(rt, "fid"),
					Line:   rapid.IntRange(0, 500).Draw(rt, "line"),
					Risk:   rapid.SampledFrom([]finding.Risk{finding.RiskLow, finding.RiskMedium, finding.RiskHigh}).Draw(rt, "risk"),
					Reason: rapid.StringOf(rapid.RuneFrom([]rune("reason \"'"))).Draw(rt, "reason"),
				},
			},
			CreatedAt: time.Unix(rapid.Int64Range(1_000_000_000, 2_000_000_000).Draw(rt, "created"), 0),
		}

		require.NoError(rt, repo.Save(c))
		got, err := repo.FindByID(c.ID)
		require.NoError(rt, err)

		require.Equal(rt, c.Summary, got.Summary)
		require.Equal(rt, c.Source, got.Source)
		require.Equal(rt, c.Findings, got.Findings)
		require.True(rt, got.CreatedAt.Equal(c.CreatedAt))

		require.NoError(rt, repo.Delete(c.ID))
	})
}
