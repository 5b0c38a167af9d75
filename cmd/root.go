// Package cmd provides the root command and CLI setup for covdungeon.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/covdungeon/internal/adapter"
	"github.com/mouse-blink/covdungeon/internal/config"
	"github.com/mouse-blink/covdungeon/internal/controller"
	"github.com/mouse-blink/covdungeon/internal/domain"
	"github.com/mouse-blink/covdungeon/internal/logging"
)

var fsAdapter adapter.SourceFSAdapter
var parser adapter.Parser
var generator domain.Generator
var runStore adapter.RunStore
var workflow domain.Workflow
var ui controller.UI
var settings = config.Default()

func init() {
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	parser = adapter.NewTreeSitterParser()
	generator = domain.NewGenerator(parser)
}

var configFlag string
var logLevelFlag string
var logFormatFlag string
var historyFlag string
var noHistoryFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "covdungeon",
		Short: "Explore JavaScript functions as coverage dungeons",
		Long: `Covdungeon turns a JavaScript function into a dungeon map. Every statement
is a gem, every conditional is a fork, and running the function with chosen
inputs collects the gems its execution reaches.

Paths for list follow Go-style patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./a.js ./lib   scan files and directories`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return teardown()
		},
	}
	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", config.DefaultFile, "settings file")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "log format (text, json)")
	cmd.PersistentFlags().StringVar(&historyFlag, "history", "", "sqlite file holding run history")
	cmd.PersistentFlags().BoolVar(&noHistoryFlag, "no-history", false, "keep run history in memory only")

	return cmd
}

// setup loads settings, installs the logger and wires the workflow unless
// one was already provided.
func setup(cmd *cobra.Command) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	applyFlags(&cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	settings = cfg

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: logging.Format(cfg.Log.Format),
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.SetContext(logging.WithLogger(ctx, logger))

	if workflow != nil {
		return nil
	}

	if ui == nil {
		ui = controller.NewUI(cmd.Root(), controller.IsTTY(os.Stdout))
	}

	runStore = adapter.NewNopRunStore()

	if cfg.History.Enabled {
		store, err := adapter.OpenSQLiteRunStore(cfg.History.Path)
		if err != nil {
			return err
		}

		runStore = store
	}

	sandbox := adapter.NewGojaSandbox(parser, adapter.NewInstrumenter(), logger.With(slog.String("source", "console")))
	executor := domain.NewExecutor(sandbox, domain.WithTimeout(cfg.Run.Timeout))
	workflow = domain.NewWorkflow(fsAdapter, runStore, ui, generator, executor)

	return nil
}

func applyFlags(cfg *config.Config) {
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}

	if logFormatFlag != "" {
		cfg.Log.Format = logFormatFlag
	}

	if historyFlag != "" {
		cfg.History.Path = historyFlag
		cfg.History.Enabled = true
	}

	if noHistoryFlag {
		cfg.History.Enabled = false
	}
}

func teardown() error {
	if runStore == nil {
		return nil
	}

	err := runStore.Close()
	runStore = nil

	if err != nil {
		return fmt.Errorf("failed to close history: %w", err)
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
