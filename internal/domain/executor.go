package domain

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/mouse-blink/covdungeon/internal/adapter"
	"github.com/mouse-blink/covdungeon/internal/logging"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

// ScriptPrefix marks a string stub as JavaScript source.
const ScriptPrefix = "js:"

// thrownMessage is the error message raised by dependencies when a run asks
// them to throw.
const thrownMessage = "stubbed dependency failure"

// Executor runs a level once under a set of stubs.
type Executor interface {
	// Execute never returns an error directly: failures land in
	// RunResult.Err next to whatever coverage was collected first.
	Execute(ctx context.Context, source []byte, fnName string, stubs map[string]any) m.RunResult
}

type executor struct {
	sandbox adapter.Sandbox
	timeout time.Duration
}

// ExecutorOption configures NewExecutor.
type ExecutorOption func(*executor)

// WithTimeout interrupts runs that take longer than d. Zero disables it.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *executor) {
		e.timeout = d
	}
}

// NewExecutor constructs an Executor on top of sandbox.
func NewExecutor(sandbox adapter.Sandbox, opts ...ExecutorOption) Executor {
	e := &executor{sandbox: sandbox}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Execute passes stubs named after parameters positionally and installs
// every other stub as a global dependency.
func (e *executor) Execute(ctx context.Context, source []byte, fnName string, stubs map[string]any) m.RunResult {
	logger := logging.FromContext(ctx).With(slog.String("function", fnName))

	if e.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	throwing := truthy(stubs[ThrowErrorStub])

	env := map[string]any{}
	if throwing {
		env[adapter.ThrowFlag] = true
	}

	program, err := e.sandbox.Load(ctx, source, fnName, env)
	if err != nil {
		logger.Debug("failed to load level", slog.Any("error", err))

		return m.RunResult{Err: fmt.Errorf("failed to load %s: %w", fnName, err)}
	}

	params := program.Params()
	isParam := make(map[string]bool, len(params))
	args := make([]any, len(params))

	for i, name := range params {
		isParam[name] = true

		if v, ok := stubs[name]; ok {
			args[i] = NormalizeStub(v)
			if throwing {
				args[i] = throwingStub(args[i])
			}
		} else {
			args[i] = m.Undefined
		}
	}

	for _, name := range slices.Sorted(maps.Keys(stubs)) {
		if isParam[name] || name == ThrowErrorStub {
			continue
		}

		value := NormalizeStub(stubs[name])
		if throwing {
			value = throwingStub(value)
		}

		if err := program.Override(name, value); err != nil {
			return m.RunResult{Coverage: program.Coverage(), Err: err}
		}
	}

	result, err := program.Invoke(ctx, args)
	if err != nil {
		logger.Debug("run failed", slog.Any("error", err))

		return m.RunResult{Coverage: program.Coverage(), Err: err}
	}

	return m.RunResult{Result: result, Coverage: program.Coverage()}
}

// NormalizeStub turns "js:"-prefixed strings into script stubs, descending
// into maps and slices.
func NormalizeStub(v any) any {
	switch val := v.(type) {
	case string:
		if src, ok := strings.CutPrefix(val, ScriptPrefix); ok {
			return m.ScriptStub(strings.TrimSpace(src))
		}

		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = NormalizeStub(item)
		}

		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = NormalizeStub(item)
		}

		return out
	default:
		return v
	}
}

// throwingStub replaces every callable inside v with one that throws.
func throwingStub(v any) any {
	switch val := v.(type) {
	case m.ScriptStub, m.FuncStub, m.ThrowStub:
		return m.ThrowStub{Message: thrownMessage}
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = throwingStub(item)
		}

		return out
	default:
		return v
	}
}
