package adapter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

func newTestStore(t *testing.T) *SQLiteRunStore {
	t.Helper()

	store, err := OpenSQLiteRunStore(filepath.Join(t.TempDir(), "history", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func sampleRecord() *m.CoverageRecord {
	record := m.NewCoverageRecord()
	record.StatementMap[0] = m.Location{Start: m.Position{Line: 1, Column: 2}, End: m.Position{Line: 1, Column: 9}}
	record.S[0] = 3
	record.BranchMap[0] = m.BranchMeta{Type: "if", Locations: []m.Location{{}, {}}}
	record.B[0] = []int{1, 0}
	record.FnMap[0] = m.FunctionMeta{Name: "check"}
	record.F[0] = 1

	return record
}

func TestSQLiteRunStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	calls := 0
	store.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}

	first, err := store.SaveRun(ctx, m.RunEntry{
		LevelKey: "abc:check",
		Function: "check",
		Stubs:    map[string]any{"x": 15.0},
		Coverage: sampleRecord(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, base.Add(time.Second), first.CreatedAt)

	_, err = store.SaveRun(ctx, m.RunEntry{
		LevelKey: "abc:check",
		Function: "check",
		Stubs:    map[string]any{"x": 5.0},
		Error:    "execution failed: boom",
		Coverage: m.NewCoverageRecord(),
	})
	require.NoError(t, err)

	_, err = store.SaveRun(ctx, m.RunEntry{LevelKey: "other:fn", Function: "fn", Coverage: m.NewCoverageRecord()})
	require.NoError(t, err)

	runs, err := store.LoadRuns(ctx, "abc:check")
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, first.ID, runs[0].ID)
	assert.Equal(t, map[string]any{"x": 15.0}, runs[0].Stubs)
	assert.Equal(t, sampleRecord(), runs[0].Coverage)
	assert.Empty(t, runs[0].Error)
	assert.Equal(t, "execution failed: boom", runs[1].Error)
	assert.True(t, runs[0].CreatedAt.Before(runs[1].CreatedAt))
}

func TestSQLiteRunStore_ClearRuns(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, key := range []string{"a:f", "a:f", "b:g"} {
		_, err := store.SaveRun(ctx, m.RunEntry{LevelKey: key, Coverage: m.NewCoverageRecord()})
		require.NoError(t, err)
	}

	require.NoError(t, store.ClearRuns(ctx, "a:f"))

	runs, err := store.LoadRuns(ctx, "a:f")
	require.NoError(t, err)
	assert.Empty(t, runs)

	runs, err = store.LoadRuns(ctx, "b:g")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteRunStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	store, err := OpenSQLiteRunStore(path)
	require.NoError(t, err)

	_, err = store.SaveRun(ctx, m.RunEntry{LevelKey: "k", Coverage: sampleRecord()})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.LoadRuns(ctx, "k")
	require.ErrorIs(t, err, ErrStoreClosed)

	reopened, err := OpenSQLiteRunStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	runs, err := reopened.LoadRuns(ctx, "k")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNopRunStore(t *testing.T) {
	ctx := context.Background()
	store := NewNopRunStore()

	entry, err := store.SaveRun(ctx, m.RunEntry{LevelKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "k", entry.LevelKey)

	runs, err := store.LoadRuns(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, runs)
	require.NoError(t, store.ClearRuns(ctx, "k"))
	require.NoError(t, store.Close())
}
