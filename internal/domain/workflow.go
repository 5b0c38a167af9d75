package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/covdungeon/internal/adapter"
	"github.com/mouse-blink/covdungeon/internal/controller"
	"github.com/mouse-blink/covdungeon/internal/logging"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

// LevelArgs names one level: a file and the function inside it. An empty
// function picks the first one in the file.
type LevelArgs struct {
	Path     m.Path
	Function string
}

// GenerateArgs configures Generate.
type GenerateArgs struct {
	LevelArgs
	JSON bool
}

// RunArgs configures Run.
type RunArgs struct {
	LevelArgs
	Stubs map[string]any
	// Reset clears the level's history before running.
	Reset bool
}

// ListArgs configures List.
type ListArgs struct {
	Paths    []m.Path
	Parallel int
	JSON     bool
}

// HistoryArgs configures History.
type HistoryArgs struct {
	LevelArgs
}

// PlayArgs configures Play.
type PlayArgs struct {
	LevelArgs
	Defaults map[string]any
}

// Workflow defines the commands the CLI exposes.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	Run(ctx context.Context, args RunArgs) error
	List(ctx context.Context, args ListArgs) error
	History(ctx context.Context, args HistoryArgs) error
	Play(ctx context.Context, args PlayArgs) error
}

type workflow struct {
	fsAdapter adapter.SourceFSAdapter
	store     adapter.RunStore
	ui        controller.UI
	generator Generator
	executor  Executor
}

// NewWorkflow creates a new Workflow instance with the provided components.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	store adapter.RunStore,
	ui controller.UI,
	generator Generator,
	executor Executor,
) Workflow {
	if store == nil {
		store = adapter.NewNopRunStore()
	}

	return &workflow{
		fsAdapter: fsAdapter,
		store:     store,
		ui:        ui,
		generator: generator,
		executor:  executor,
	}
}

// Generate prints a level's dungeon.
func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	level, err := w.loadLevel(args.LevelArgs)
	if err != nil {
		return err
	}

	dungeon := w.generator.Generate(ctx, level.Source, level.Function)

	if args.JSON {
		return w.ui.DisplayJSON(dungeon)
	}

	return w.ui.DisplayDungeon(level, dungeon)
}

// Run executes a level once on top of its stored history.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	sess, err := w.openSession(ctx, args.LevelArgs)
	if err != nil {
		return err
	}

	if args.Reset {
		if err := sess.Reset(ctx); err != nil {
			return err
		}
	}

	report, err := sess.Run(ctx, args.Stubs)
	if err != nil {
		return err
	}

	if report.Error != "" {
		logging.FromContext(ctx).Warn("run failed",
			slog.String("level", report.Level.Key()),
			slog.String("error", report.Error))
	}

	return w.ui.DisplayRun(sess.Dungeon(), report)
}

// List generates every level under the given paths concurrently.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	parallel := args.Parallel
	if parallel <= 0 {
		parallel = 1
	}

	if !args.JSON {
		if err := w.ui.Start(controller.WithListMode()); err != nil {
			return fmt.Errorf("failed to start ui: %w", err)
		}
		defer w.ui.Close()
	}

	summaries, err := w.summarize(ctx, args.Paths, parallel)

	if args.JSON {
		if err != nil {
			return err
		}

		return w.ui.DisplayJSON(summaries)
	}

	if displayErr := w.ui.DisplayLevels(summaries, err); displayErr != nil {
		return displayErr
	}

	w.ui.Wait()

	return nil
}

func (w *workflow) summarize(ctx context.Context, paths []m.Path, parallel int) ([]m.LevelSummary, error) {
	levels, err := w.fsAdapter.Get(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to get levels: %w", err)
	}

	summaries := make([]m.LevelSummary, len(levels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, level := range levels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			dungeon := w.generator.Generate(gctx, level.Source, level.Function)
			summaries[i] = m.LevelSummary{
				Level:    level,
				Gems:     len(dungeon.Gems),
				Branches: len(dungeon.Branches),
				Width:    dungeon.Width,
				Height:   dungeon.Height,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to generate levels: %w", err)
	}

	return summaries, nil
}

// History prints the stored runs of a level and their aggregate.
func (w *workflow) History(ctx context.Context, args HistoryArgs) error {
	level, err := w.loadLevel(args.LevelArgs)
	if err != nil {
		return err
	}

	entries, err := w.store.LoadRuns(ctx, level.Key())
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	dungeon := w.generator.Generate(ctx, level.Source, level.Function)
	sess := NewSession(level, dungeon, w.executor, w.store, logging.FromContext(ctx))

	if _, err := sess.Restore(ctx); err != nil {
		return err
	}

	return w.ui.DisplayHistory(level, entries, sess.Progress())
}

// Play opens an interactive session on a level.
func (w *workflow) Play(ctx context.Context, args PlayArgs) error {
	sess, err := w.openSession(ctx, args.LevelArgs)
	if err != nil {
		return err
	}

	state := controller.PlayState{
		Level:    sess.Level(),
		Dungeon:  sess.Dungeon(),
		Progress: sess.Progress(),
		Defaults: args.Defaults,
	}

	return w.ui.Play(state, func(stubs map[string]any) (m.RunReport, error) {
		return sess.Run(ctx, stubs)
	})
}

func (w *workflow) loadLevel(args LevelArgs) (m.Level, error) {
	level, err := w.fsAdapter.Load(args.Path)
	if err != nil {
		return m.Level{}, fmt.Errorf("failed to load level: %w", err)
	}

	level.Function = args.Function

	return level, nil
}

func (w *workflow) openSession(ctx context.Context, args LevelArgs) (Session, error) {
	level, err := w.loadLevel(args)
	if err != nil {
		return nil, err
	}

	dungeon := w.generator.Generate(ctx, level.Source, level.Function)
	sess := NewSession(level, dungeon, w.executor, w.store, logging.FromContext(ctx))

	restored, err := sess.Restore(ctx)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("session opened",
		slog.String("level", level.Key()),
		slog.Int("restored", restored))

	return sess, nil
}
