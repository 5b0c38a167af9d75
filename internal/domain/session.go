package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mouse-blink/covdungeon/internal/adapter"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

// Session is the play state of one level: its dungeon, the runs merged so
// far and the gems they collected. Runs are serialized.
type Session interface {
	Level() m.Level
	Dungeon() *m.Dungeon
	// Run executes the level once, merges its coverage and stores it. A
	// failing target is reported in RunReport.Error, not as an error.
	Run(ctx context.Context, stubs map[string]any) (m.RunReport, error)
	// Restore replays stored runs into the aggregate and returns how many
	// were loaded.
	Restore(ctx context.Context) (int, error)
	// Reset clears the aggregate and the stored history.
	Reset(ctx context.Context) error
	// Progress reports the aggregate without running anything.
	Progress() m.RunReport
}

type session struct {
	mu         sync.Mutex
	level      m.Level
	dungeon    *m.Dungeon
	executor   Executor
	store      adapter.RunStore
	mapper     CoverageMapper
	aggregator CoverageAggregator
}

// NewSession starts an empty session for level. A nil store keeps history
// in memory only.
func NewSession(level m.Level, dungeon *m.Dungeon, executor Executor, store adapter.RunStore, logger *slog.Logger) Session {
	if store == nil {
		store = adapter.NewNopRunStore()
	}

	return &session{
		level:      level,
		dungeon:    dungeon,
		executor:   executor,
		store:      store,
		mapper:     NewCoverageMapper(logger),
		aggregator: NewCoverageAggregator(),
	}
}

func (s *session) Level() m.Level {
	return s.level
}

func (s *session) Dungeon() *m.Dungeon {
	return s.dungeon
}

func (s *session) Run(ctx context.Context, stubs map[string]any) (m.RunReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stubs == nil {
		stubs = map[string]any{}
	}

	res := s.executor.Execute(ctx, s.level.Source, s.level.Function, stubs)

	report := m.RunReport{
		Level:         s.level,
		Stubs:         stubs,
		Result:        res.Result,
		CoveredGems:   []int{},
		UncoveredGems: []int{},
	}

	if res.Err != nil {
		report.Error = res.Err.Error()
	}

	if res.Coverage != nil {
		s.mapper.BuildMapping(res.Coverage, s.dungeon.Gems)
		report.CoveredGems = s.mapper.CoveredGemIDs(res.Coverage)
		report.UncoveredGems = s.mapper.UncoveredGemIDs(res.Coverage)
		s.aggregator.AddRun(res.Coverage)

		_, err := s.store.SaveRun(ctx, m.RunEntry{
			LevelKey: s.level.Key(),
			Function: s.level.Function,
			Stubs:    stubs,
			Error:    report.Error,
			Coverage: res.Coverage,
		})
		if err != nil {
			return report, fmt.Errorf("failed to save run: %w", err)
		}
	}

	s.fillProgress(&report)

	return report, nil
}

func (s *session) Restore(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.store.LoadRuns(ctx, s.level.Key())
	if err != nil {
		return 0, fmt.Errorf("failed to load runs: %w", err)
	}

	restored := 0

	for _, entry := range entries {
		if entry.Coverage == nil {
			continue
		}

		s.aggregator.AddRun(entry.Coverage)
		restored++
	}

	if agg := s.aggregator.Aggregate(); agg != nil {
		s.mapper.BuildMapping(agg, s.dungeon.Gems)
	}

	return restored, nil
}

func (s *session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.aggregator.Reset()

	if err := s.store.ClearRuns(ctx, s.level.Key()); err != nil {
		return fmt.Errorf("failed to clear runs: %w", err)
	}

	return nil
}

func (s *session) Progress() m.RunReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := m.RunReport{Level: s.level, CoveredGems: []int{}, UncoveredGems: []int{}}
	s.fillProgress(&report)

	return report
}

func (s *session) fillProgress(report *m.RunReport) {
	agg := s.aggregator.Aggregate()

	report.CollectedGems = s.mapper.CoveredGemIDs(agg)
	report.Statements = s.aggregator.StatementCoverage()
	report.Branches = s.aggregator.BranchCoverage()
	report.Functions = s.aggregator.FunctionCoverage()
	report.FullCoverage = s.aggregator.IsFullCoverage()
	report.RunsInAggregate = s.aggregator.Runs()
}
