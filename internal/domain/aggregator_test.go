package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

func coverage(s map[int]int, b map[int][]int, f map[int]int) *m.CoverageRecord {
	rec := m.NewCoverageRecord()
	for id, hits := range s {
		rec.StatementMap[id] = at(id+1, 0)
		rec.S[id] = hits
	}

	for id, arms := range b {
		rec.BranchMap[id] = m.BranchMeta{Type: "if"}
		rec.B[id] = arms
	}

	for id, hits := range f {
		rec.FnMap[id] = m.FunctionMeta{Name: "f"}
		rec.F[id] = hits
	}

	return rec
}

func TestCoverageAggregator_Empty(t *testing.T) {
	agg := NewCoverageAggregator()

	assert.Nil(t, agg.Aggregate())
	assert.Equal(t, m.CoverageStat{}, agg.StatementCoverage())
	assert.Equal(t, m.CoverageStat{}, agg.BranchCoverage())
	assert.Equal(t, m.CoverageStat{}, agg.FunctionCoverage())
	assert.False(t, agg.IsFullCoverage())
	assert.Zero(t, agg.Runs())

	agg.AddRun(nil)
	assert.Zero(t, agg.Runs())
}

func TestCoverageAggregator_MergesByMaximum(t *testing.T) {
	agg := NewCoverageAggregator()

	agg.AddRun(coverage(map[int]int{0: 1, 1: 2, 2: 0}, map[int][]int{0: {1, 0}}, map[int]int{0: 1}))

	assert.Equal(t, m.NewCoverageStat(2, 3), agg.StatementCoverage())
	assert.Equal(t, 50.0, agg.BranchCoverage().Percent)
	assert.False(t, agg.IsFullCoverage())

	agg.AddRun(coverage(map[int]int{0: 3, 1: 0, 2: 1}, map[int][]int{0: {0, 1}}, map[int]int{0: 1}))

	got := agg.Aggregate()
	require.NotNil(t, got)
	assert.Equal(t, map[int]int{0: 3, 1: 2, 2: 1}, got.S)
	assert.Equal(t, map[int][]int{0: {1, 1}}, got.B)
	assert.Equal(t, 100.0, agg.StatementCoverage().Percent)
	assert.Equal(t, 100.0, agg.BranchCoverage().Percent)
	assert.Equal(t, m.NewCoverageStat(1, 1), agg.FunctionCoverage())
	assert.True(t, agg.IsFullCoverage())
	assert.Equal(t, 2, agg.Runs())
}

func TestCoverageAggregator_Monotonic(t *testing.T) {
	runs := []*m.CoverageRecord{
		coverage(map[int]int{0: 1, 1: 0, 2: 0, 3: 0}, nil, nil),
		coverage(map[int]int{0: 0, 1: 0, 2: 0, 3: 0}, nil, nil),
		coverage(map[int]int{0: 0, 1: 1, 2: 0, 3: 0}, nil, nil),
		coverage(map[int]int{0: 0, 1: 0, 2: 0, 3: 1}, nil, nil),
	}

	agg := NewCoverageAggregator()
	last := 0.0

	for _, run := range runs {
		agg.AddRun(run)

		pct := agg.StatementCoverage().Percent
		assert.GreaterOrEqual(t, pct, last)
		last = pct
	}

	assert.Equal(t, 75.0, last)
}

func TestCoverageAggregator_FullWithoutBranches(t *testing.T) {
	agg := NewCoverageAggregator()
	agg.AddRun(coverage(map[int]int{0: 1}, nil, nil))

	assert.Zero(t, agg.BranchCoverage().Total)
	assert.True(t, agg.IsFullCoverage())
}

func TestCoverageAggregator_IsolatedFromInput(t *testing.T) {
	run := coverage(map[int]int{0: 1, 1: 0}, nil, nil)

	agg := NewCoverageAggregator()
	agg.AddRun(run)

	run.S[1] = 5
	assert.Equal(t, 0, agg.Aggregate().S[1])

	snapshot := agg.Aggregate()
	snapshot.S[1] = 9
	assert.Equal(t, 0, agg.Aggregate().S[1])
}

func TestCoverageAggregator_Reset(t *testing.T) {
	agg := NewCoverageAggregator()
	agg.AddRun(coverage(map[int]int{0: 1}, nil, nil))
	agg.Reset()

	assert.Nil(t, agg.Aggregate())
	assert.Zero(t, agg.Runs())
	assert.Zero(t, agg.StatementCoverage().Total)
}
