package cmd

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/covdungeon/internal/config"
	"github.com/mouse-blink/covdungeon/internal/domain"
	"github.com/mouse-blink/covdungeon/internal/logging"
)

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "covdungeon", cmd.Use)
	assert.True(t, cmd.SilenceUsage)

	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{name: "config", shorthand: "c", def: config.DefaultFile},
		{name: "log-level"},
		{name: "log-format"},
		{name: "history"},
		{name: "no-history", def: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"generate", "run", "list", "history", "play"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestSetup_AppliesSettingsAndFlags(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\nrun:\n  timeout: 2s\nlist:\n  parallel: 8\n")

	cmd, mockWorkflow, _ := newTestRoot(t, newHistoryCmd())

	mockWorkflow.EXPECT().History(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ domain.HistoryArgs) error {
			assert.True(t, logging.FromContext(ctx).Enabled(ctx, slog.LevelDebug))
			return nil
		})

	cmd.SetArgs([]string{"history", "a.js", "--config", path, "--log-level", "debug", "--no-history"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "debug", settings.Log.Level)
	assert.Equal(t, 8, settings.List.Parallel)
	assert.False(t, settings.History.Enabled)
	assert.Equal(t, "2s", settings.Run.Timeout.String())
}

func TestSetup_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
		want string
	}{
		{
			name: "invalid log level flag",
			args: func(*testing.T) []string { return []string{"history", "a.js", "--log-level", "loud"} },
			want: "invalid settings",
		},
		{
			name: "broken settings file",
			args: func(t *testing.T) []string {
				return []string{"history", "a.js", "--config", writeConfig(t, "log: [")}
			},
			want: "failed to parse config",
		},
		{
			name: "invalid log format flag",
			args: func(*testing.T) []string { return []string{"history", "a.js", "--log-format", "xml"} },
			want: "unknown log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, _ := newTestRoot(t, newHistoryCmd())

			cmd.SetArgs(tt.args(t))
			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRootCmd_PropagatesWorkflowErrors(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newHistoryCmd())
	wantErr := errors.New("level not found")

	mockWorkflow.EXPECT().History(mock.Anything, mock.Anything).Return(wantErr)

	cmd.SetArgs([]string{"history", "a.js"})
	require.ErrorIs(t, cmd.Execute(), wantErr)
}

func TestApplyFlags(t *testing.T) {
	t.Cleanup(func() {
		logLevelFlag, logFormatFlag, historyFlag, noHistoryFlag = "", "", "", false
	})

	cfg := config.Default()
	cfg.History.Enabled = false

	logLevelFlag, logFormatFlag, historyFlag, noHistoryFlag = "error", "json", "/tmp/runs.db", false
	applyFlags(&cfg)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/runs.db", cfg.History.Path)
	assert.True(t, cfg.History.Enabled)

	noHistoryFlag = true
	applyFlags(&cfg)
	assert.False(t, cfg.History.Enabled)
}
