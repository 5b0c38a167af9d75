// Package controller renders dungeons, runs and level lists for the CLI.
package controller

import (
	m "github.com/mouse-blink/covdungeon/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeReport StartMode = iota
	ModeList
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithReportMode prints results as they arrive.
func WithReportMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeReport
	}
}

// WithListMode collects a level list for browsing.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// RunFunc executes the level being played with the given stubs.
type RunFunc func(stubs map[string]any) (m.RunReport, error)

// PlayState is what an interactive session starts from.
type PlayState struct {
	Level    m.Level
	Dungeon  *m.Dungeon
	Progress m.RunReport
	// Defaults are merged under every option's stubs.
	Defaults map[string]any
}

// UI defines how the workflow presents its results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplayDungeon(level m.Level, dungeon *m.Dungeon) error
	DisplayJSON(v any) error
	DisplayRun(dungeon *m.Dungeon, report m.RunReport) error
	DisplayLevels(levels []m.LevelSummary, err error) error
	DisplayHistory(level m.Level, entries []m.RunEntry, progress m.RunReport) error
	Play(state PlayState, run RunFunc) error
}
