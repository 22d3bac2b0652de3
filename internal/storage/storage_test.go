package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annigue/Artikel-LLM/internal/engine"
	"github.com/annigue/Artikel-LLM/internal/evaluate"
	"github.com/annigue/Artikel-LLM/internal/repair"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(id string, passed bool) *engine.Result {
	res := &engine.Result{
		RunID:        id,
		Final:        "# Shakshuka\n\nIch koche.\n",
		Passed:       passed,
		Destination:  "Israel",
		StoryMode:    true,
		RepairRounds: 2,
		ServiceCalls: 5,
		Strategies:   []repair.Strategy{repair.StrategyVoice, repair.StrategyPolish},
	}
	res.Report = evaluate.Report{Passed: passed}
	res.Report.Style.Words = 42
	return res
}

func TestSaveAndGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	req := engine.Request{Topic: "Shakshuka", Details: "Kocher", PrimaryKeyword: "Shakshuka Rezept"}
	require.NoError(t, s.SaveRun(ctx, req, sampleResult("run-1", true)))

	got, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Shakshuka", got.Topic)
	assert.Equal(t, "Shakshuka Rezept", got.PrimaryKeyword)
	assert.Equal(t, "Israel", got.Destination)
	assert.True(t, got.StoryMode)
	assert.True(t, got.Passed)
	assert.Equal(t, 2, got.RepairRounds)
	assert.Equal(t, 5, got.ServiceCalls)
	assert.Equal(t, []string{"voice_rewrite", "polish"}, got.Strategies)
	assert.Equal(t, 42, got.Words)
	assert.Contains(t, got.Final, "# Shakshuka")
	assert.Contains(t, got.ReportJSON, `"Passed":true`)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	req := engine.Request{Topic: "Shakshuka", Details: "Kocher"}

	require.NoError(t, s.SaveRun(ctx, req, sampleResult("run-a", true)))
	require.NoError(t, s.SaveRun(ctx, req, sampleResult("run-b", false)))

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	byID := map[string]Run{}
	for _, r := range runs {
		byID[r.ID] = r
	}
	assert.True(t, byID["run-a"].Passed)
	assert.False(t, byID["run-b"].Passed)
	assert.Empty(t, byID["run-b"].PrimaryKeyword)
}

func TestListRunsHonorsLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	req := engine.Request{Topic: "Shakshuka", Details: "Kocher"}

	for _, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, s.SaveRun(ctx, req, sampleResult(id, true)))
	}
	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
