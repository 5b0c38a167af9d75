// Package config loads the optional .covdungeon.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/covdungeon/internal/logging"
)

// DefaultFile is the settings file looked up in the working directory.
const DefaultFile = ".covdungeon.yaml"

// Config is the full settings tree.
type Config struct {
	Log     LogConfig                 `yaml:"log"`
	History HistoryConfig             `yaml:"history"`
	Run     RunConfig                 `yaml:"run"`
	List    ListConfig                `yaml:"list"`
	Stubs   map[string]map[string]any `yaml:"stubs"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HistoryConfig controls where runs are persisted.
type HistoryConfig struct {
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

// RunConfig controls function execution.
type RunConfig struct {
	// Timeout bounds a single run. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
}

// ListConfig controls batch generation.
type ListConfig struct {
	Parallel int `yaml:"parallel"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "warn",
			Format: string(logging.FormatText),
		},
		History: HistoryConfig{
			Path:    ".covdungeon/history.db",
			Enabled: true,
		},
		List: ListConfig{Parallel: 4},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-chosen settings file
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	switch logging.Format(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON, "":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	if c.Run.Timeout < 0 {
		return fmt.Errorf("run.timeout must not be negative")
	}

	if c.List.Parallel < 0 {
		return fmt.Errorf("list.parallel must not be negative")
	}

	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}

	return nil
}

// StubsFor returns a copy of the default stubs configured for fn.
func (c Config) StubsFor(fn string) map[string]any {
	out := make(map[string]any, len(c.Stubs[fn]))
	for k, v := range c.Stubs[fn] {
		out[k] = v
	}

	return out
}
