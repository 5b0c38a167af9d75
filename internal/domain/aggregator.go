package domain

import (
	m "github.com/mouse-blink/covdungeon/internal/model"
)

// CoverageAggregator keeps the running maximum of every hit count across
// runs. Its percentages never decrease until Reset.
type CoverageAggregator interface {
	AddRun(record *m.CoverageRecord)
	Aggregate() *m.CoverageRecord
	StatementCoverage() m.CoverageStat
	BranchCoverage() m.CoverageStat
	FunctionCoverage() m.CoverageStat
	// IsFullCoverage requires every statement and, when there are any,
	// every branch arm to have run.
	IsFullCoverage() bool
	Runs() int
	Reset()
}

type coverageAggregator struct {
	aggregate *m.CoverageRecord
	runs      int
}

// NewCoverageAggregator constructs an empty CoverageAggregator. It is not
// safe for concurrent use.
func NewCoverageAggregator() CoverageAggregator {
	return &coverageAggregator{}
}

func (a *coverageAggregator) AddRun(record *m.CoverageRecord) {
	if record == nil {
		return
	}

	a.runs++

	if a.aggregate == nil {
		a.aggregate = record.Clone()
		return
	}

	agg := a.aggregate

	for id, loc := range record.StatementMap {
		agg.StatementMap[id] = loc
	}

	for id, meta := range record.BranchMap {
		if _, ok := agg.BranchMap[id]; !ok {
			agg.BranchMap[id] = meta
		}
	}

	for id, meta := range record.FnMap {
		agg.FnMap[id] = meta
	}

	for id, hits := range record.S {
		agg.S[id] = max(agg.S[id], hits)
	}

	for id, arms := range record.B {
		merged := agg.B[id]
		if len(merged) < len(arms) {
			grown := make([]int, len(arms))
			copy(grown, merged)
			merged = grown
		}

		for i, hits := range arms {
			merged[i] = max(merged[i], hits)
		}

		agg.B[id] = merged
	}

	for id, hits := range record.F {
		agg.F[id] = max(agg.F[id], hits)
	}
}

// Aggregate returns a copy of the merged record, or nil before any run.
func (a *coverageAggregator) Aggregate() *m.CoverageRecord {
	return a.aggregate.Clone()
}

func (a *coverageAggregator) StatementCoverage() m.CoverageStat {
	if a.aggregate == nil {
		return m.NewCoverageStat(0, 0)
	}

	return m.NewCoverageStat(countHit(a.aggregate.S), len(a.aggregate.S))
}

func (a *coverageAggregator) BranchCoverage() m.CoverageStat {
	if a.aggregate == nil {
		return m.NewCoverageStat(0, 0)
	}

	covered, total := 0, 0

	for _, arms := range a.aggregate.B {
		for _, hits := range arms {
			total++

			if hits > 0 {
				covered++
			}
		}
	}

	return m.NewCoverageStat(covered, total)
}

func (a *coverageAggregator) FunctionCoverage() m.CoverageStat {
	if a.aggregate == nil {
		return m.NewCoverageStat(0, 0)
	}

	return m.NewCoverageStat(countHit(a.aggregate.F), len(a.aggregate.F))
}

func (a *coverageAggregator) IsFullCoverage() bool {
	branches := a.BranchCoverage()

	return a.StatementCoverage().Percent >= 100 && (branches.Total == 0 || branches.Percent >= 100)
}

func (a *coverageAggregator) Runs() int {
	return a.runs
}

func (a *coverageAggregator) Reset() {
	a.aggregate = nil
	a.runs = 0
}

func countHit(counts map[int]int) int {
	n := 0

	for _, hits := range counts {
		if hits > 0 {
			n++
		}
	}

	return n
}
