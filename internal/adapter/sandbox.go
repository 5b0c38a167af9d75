package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/dop251/goja"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

var (
	// ErrFunctionNotFound reports that the requested entry function does not
	// exist in the program.
	ErrFunctionNotFound = errors.New("function not found")
	// ErrMissingDependency reports a reference to a global nobody provided.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrExecution reports a thrown exception, a rejected or unsettled
	// promise, or an interrupted run.
	ErrExecution = errors.New("execution failed")
)

// ThrowFlag is the global set when a run asks its dependencies to throw.
const ThrowFlag = "__throwError"

// Sandbox loads instrumented programs into isolated runtimes.
type Sandbox interface {
	// Load prepares source for a single run of fnName. env lists the extra
	// globals the program may see.
	Load(ctx context.Context, source []byte, fnName string, env map[string]any) (Program, error)
}

// Program is one loaded level, good for a single invocation.
type Program interface {
	// Params returns the declared parameter names of the entry function.
	Params() []string
	// Override installs a global dependency, replacing any definition the
	// program makes itself with `var` or a function declaration.
	Override(name string, value any) error
	// Invoke runs the program and calls the entry function positionally.
	// Async functions are settled before Invoke returns.
	Invoke(ctx context.Context, args []any) (any, error)
	// Coverage returns the hit counts collected so far.
	Coverage() *m.CoverageRecord
}

// GojaSandbox runs programs in a fresh goja runtime per Load, so coverage
// counters never leak between runs.
type GojaSandbox struct {
	parser       Parser
	instrumenter Instrumenter
	logger       *slog.Logger
}

// NewGojaSandbox wires a sandbox. A nil logger discards console output.
func NewGojaSandbox(parser Parser, instrumenter Instrumenter, logger *slog.Logger) *GojaSandbox {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &GojaSandbox{parser: parser, instrumenter: instrumenter, logger: logger}
}

// Load implements Sandbox.
func (s *GojaSandbox) Load(ctx context.Context, source []byte, fnName string, env map[string]any) (Program, error) {
	prog, err := s.parser.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse program: %w", err)
	}
	defer prog.Close()

	info := FindFunction(prog.Root, prog.Source, fnName)
	if info == nil || (fnName != "" && info.Name != fnName) {
		return nil, fmt.Errorf("%w: %q", ErrFunctionNotFound, fnName)
	}

	entry := info.Name
	if entry == "" {
		if parent := info.Node.Parent(); parent == nil || parent.Type() != NodeExportStatement {
			return nil, fmt.Errorf("%w: anonymous function is not reachable", ErrFunctionNotFound)
		}

		entry = DefaultExportVar
	}

	instrumented, err := s.instrumenter.Instrument(prog)
	if err != nil {
		return nil, fmt.Errorf("failed to instrument program: %w", err)
	}

	p := &gojaProgram{
		vm:           goja.New(),
		entry:        entry,
		params:       info.Params,
		instrumented: instrumented,
		overrides:    map[string]goja.Value{},
	}

	if err := p.installConsole(s.logger); err != nil {
		return nil, err
	}

	for name, value := range env {
		if err := p.vm.Set(name, p.toValue(value)); err != nil {
			return nil, fmt.Errorf("failed to install global %q: %w", name, err)
		}
	}

	return p, nil
}

type gojaProgram struct {
	mu           sync.Mutex
	vm           *goja.Runtime
	entry        string
	params       []string
	instrumented *Instrumented
	overrides    map[string]goja.Value
	loaded       bool
}

func (p *gojaProgram) Params() []string {
	out := make([]string, len(p.params))
	copy(out, p.params)

	return out
}

func (p *gojaProgram) Override(name string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := p.toValue(value)
	p.overrides[name] = v

	if err := p.vm.Set(name, v); err != nil {
		return fmt.Errorf("failed to override %q: %w", name, err)
	}

	return nil
}

func (p *gojaProgram) Invoke(ctx context.Context, args []any) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecution, err)
	}

	stop := context.AfterFunc(ctx, func() {
		p.vm.Interrupt(ctx.Err())
	})
	defer stop()

	if err := p.load(); err != nil {
		return nil, err
	}

	target, err := p.vm.RunString(p.entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFunctionNotFound, p.entry)
	}

	fn, ok := goja.AssertFunction(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a function", ErrFunctionNotFound, p.entry)
	}

	values := make([]goja.Value, len(args))
	for i, arg := range args {
		values[i] = p.toValue(arg)
	}

	res, err := fn(goja.Undefined(), values...)
	if err != nil {
		return nil, classify(err)
	}

	return settle(res)
}

// load runs the counter preamble and the program body once.
func (p *gojaProgram) load() error {
	if p.loaded {
		return nil
	}

	p.loaded = true

	preamble, err := p.instrumented.Preamble()
	if err != nil {
		return err
	}

	if _, err := p.vm.RunString(preamble); err != nil {
		return fmt.Errorf("failed to install coverage counters: %w", err)
	}

	if _, err := p.vm.RunScript("level.js", p.instrumented.Code); err != nil {
		return classify(err)
	}

	// Re-apply so overrides win over the program's own var and function
	// declarations.
	for name, v := range p.overrides {
		if err := p.vm.Set(name, v); err != nil {
			return fmt.Errorf("failed to override %q: %w", name, err)
		}
	}

	return nil
}

func (p *gojaProgram) Coverage() *m.CoverageRecord {
	p.mu.Lock()
	defer p.mu.Unlock()

	record := p.instrumented.Record.Clone()

	counters := p.vm.Get(CoverageVar)
	if counters == nil || goja.IsUndefined(counters) || goja.IsNull(counters) {
		return record
	}

	exported, ok := counters.Export().(map[string]any)
	if !ok {
		return record
	}

	for key, v := range asMap(exported["s"]) {
		if id, err := strconv.Atoi(key); err == nil {
			record.S[id] = toInt(v)
		}
	}

	for key, v := range asMap(exported["f"]) {
		if id, err := strconv.Atoi(key); err == nil {
			record.F[id] = toInt(v)
		}
	}

	for key, v := range asMap(exported["b"]) {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}

		arms, _ := v.([]any)
		hits := make([]int, len(arms))

		for i, a := range arms {
			hits[i] = toInt(a)
		}

		record.B[id] = hits
	}

	return record
}

func (p *gojaProgram) installConsole(logger *slog.Logger) error {
	console := p.vm.NewObject()

	for _, level := range []string{"log", "info", "warn", "error", "debug"} {
		fn := func(call goja.FunctionCall) goja.Value {
			parts := make([]any, len(call.Arguments))
			for i, a := range call.Arguments {
				parts[i] = a.String()
			}

			logger.Debug("console output", slog.String("level", level), slog.Any("args", parts))

			return goja.Undefined()
		}

		if err := console.Set(level, fn); err != nil {
			return fmt.Errorf("failed to install console.%s: %w", level, err)
		}
	}

	if err := p.vm.Set("console", console); err != nil {
		return fmt.Errorf("failed to install console: %w", err)
	}

	return nil
}

// toValue converts a stub value into a runtime value. Maps and slices are
// converted element by element so nested stubs stay callable.
func (p *gojaProgram) toValue(v any) goja.Value {
	vm := p.vm

	switch val := v.(type) {
	case nil:
		return goja.Null()
	case goja.Value:
		return val
	case m.UndefinedValue:
		return goja.Undefined()
	case m.ScriptStub:
		out, err := vm.RunString("(" + string(val) + ")")
		if err != nil {
			return vm.ToValue(string(val))
		}

		return out
	case m.FuncStub:
		ret := val.Returns

		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			return p.toValue(ret)
		})
	case m.ThrowStub:
		msg := val.Message

		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			panic(vm.NewGoError(errors.New(msg)))
		})
	case map[string]any:
		obj := vm.NewObject()
		for k, item := range val {
			_ = obj.Set(k, p.toValue(item))
		}

		return obj
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = p.toValue(item)
		}

		return vm.NewArray(items...)
	default:
		return vm.ToValue(val)
	}
}

// settle unwraps a promise returned by an async entry function. Jobs queued
// by the call have already run when the call returns.
func settle(res goja.Value) (any, error) {
	if res == nil {
		return nil, nil
	}

	promise, ok := res.Export().(*goja.Promise)
	if !ok {
		return exportValue(res), nil
	}

	switch promise.State() {
	case goja.PromiseStateFulfilled:
		return exportValue(promise.Result()), nil
	case goja.PromiseStateRejected:
		return nil, classifyValue(promise.Result())
	default:
		return nil, fmt.Errorf("%w: promise never settled", ErrExecution)
	}
}

func exportValue(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}

	return v.Export()
}

func classify(err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return fmt.Errorf("%w: interrupted: %v", ErrExecution, interrupted.Value())
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		return classifyValue(exception.Value())
	}

	return fmt.Errorf("%w: %w", ErrExecution, err)
}

func classifyValue(v goja.Value) error {
	if v == nil {
		return fmt.Errorf("%w: unknown error", ErrExecution)
	}

	if obj, ok := v.(*goja.Object); ok {
		if name := obj.Get("name"); name != nil && name.String() == "ReferenceError" {
			return fmt.Errorf("%w: %s", ErrMissingDependency, messageOf(obj))
		}

		return fmt.Errorf("%w: %s", ErrExecution, messageOf(obj))
	}

	return fmt.Errorf("%w: %s", ErrExecution, v.String())
}

func messageOf(obj *goja.Object) string {
	if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) {
		return msg.String()
	}

	return obj.String()
}

func asMap(v any) map[string]any {
	out, _ := v.(map[string]any)

	return out
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
