package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/covdungeon/internal/adapter"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

func newTestExecutor(opts ...ExecutorOption) Executor {
	sandbox := adapter.NewGojaSandbox(adapter.NewTreeSitterParser(), adapter.NewInstrumenter(), nil)

	return NewExecutor(sandbox, opts...)
}

func TestExecutor_Execute(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		fn    string
		stubs map[string]any
		want  any
		hitS  map[int]int
	}{
		{
			name:  "parameters are passed positionally",
			src:   checkValueSource,
			fn:    "checkValue",
			stubs: map[string]any{"x": 15.0},
			want:  []any{"start", "big", "very big", "end"},
			hitS:  map[int]int{0: 1, 1: 1, 2: 1, 3: 1, 4: 1, 5: 0, 6: 1, 7: 1},
		},
		{
			name:  "missing parameters are undefined",
			src:   "function kind(a, b) { return typeof a + ',' + b; }",
			fn:    "kind",
			stubs: map[string]any{"b": "js: 1 + 1"},
			want:  "undefined,2",
		},
		{
			name: "other stubs become globals",
			src: `async function getName(id) {
  const user = await db.find(id);
  return user ? user.name : null;
}`,
			fn: "getName",
			stubs: map[string]any{
				"id": 1.0,
				"db": map[string]any{"find": "js: async (id) => ({ id, name: 'ann' })"},
			},
			want: "ann",
		},
		{
			name: "throw flag makes dependencies throw",
			src: `function load() {
  try {
    return api.fetch();
  } catch (e) {
    return 'caught: ' + e.message;
  }
}`,
			fn: "load",
			stubs: map[string]any{
				ThrowErrorStub: true,
				"api":          map[string]any{"fetch": m.FuncStub{Returns: 1.0}},
			},
			want: "caught: " + thrownMessage,
		},
		{
			name: "throw flag reaches parameter dependencies",
			src: `function load(db, id) {
  try {
    return db.find(id);
  } catch (e) {
    return 'caught ' + id + ': ' + e.message;
  }
}`,
			fn: "load",
			stubs: map[string]any{
				ThrowErrorStub: true,
				"db":           map[string]any{"find": "js:(id) => ({ id })"},
				"id":           1.0,
			},
			want: "caught 1: " + thrownMessage,
		},
		{
			name:  "throw flag is visible to the program",
			src:   "function f() { return typeof __throwError === 'undefined' ? 'calm' : 'throwing'; }",
			fn:    "f",
			stubs: map[string]any{ThrowErrorStub: true},
			want:  "throwing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestExecutor().Execute(context.Background(), []byte(tt.src), tt.fn, tt.stubs)

			require.NoError(t, res.Err)
			assert.Equal(t, tt.want, res.Result)
			require.NotNil(t, res.Coverage)

			if tt.hitS != nil {
				assert.Equal(t, tt.hitS, res.Coverage.S)
			}
		})
	}
}

func TestExecutor_Failures(t *testing.T) {
	t.Run("syntax error has no coverage", func(t *testing.T) {
		res := newTestExecutor().Execute(context.Background(), []byte("function f( {"), "f", nil)

		require.ErrorIs(t, res.Err, adapter.ErrSyntax)
		assert.Nil(t, res.Coverage)
	})

	t.Run("thrown error keeps partial coverage", func(t *testing.T) {
		src := "function f() {\n  const a = 1;\n  throw new Error('boom ' + a);\n}"
		res := newTestExecutor().Execute(context.Background(), []byte(src), "f", nil)

		require.ErrorIs(t, res.Err, adapter.ErrExecution)
		assert.Contains(t, res.Err.Error(), "boom 1")
		require.NotNil(t, res.Coverage)
		assert.Equal(t, 1, res.Coverage.S[0])
	})

	t.Run("timeout interrupts the run", func(t *testing.T) {
		res := newTestExecutor(WithTimeout(50*time.Millisecond)).
			Execute(context.Background(), []byte("function spin() { while (true) {} }"), "spin", nil)

		require.ErrorIs(t, res.Err, adapter.ErrExecution)
		assert.NotNil(t, res.Coverage)
	})
}

func TestNormalizeStub(t *testing.T) {
	got := NormalizeStub(map[string]any{
		"plain": "text",
		"fn":    "js:  () => 1 ",
		"list":  []any{"js:x", 2.0},
		"deep":  map[string]any{"call": "js:async () => null"},
	})

	assert.Equal(t, map[string]any{
		"plain": "text",
		"fn":    m.ScriptStub("() => 1"),
		"list":  []any{m.ScriptStub("x"), 2.0},
		"deep":  map[string]any{"call": m.ScriptStub("async () => null")},
	}, got)
}

func TestThrowingStub(t *testing.T) {
	throw := m.ThrowStub{Message: thrownMessage}

	got := throwingStub(map[string]any{
		"fn":    m.ScriptStub("() => 1"),
		"value": 3.0,
		"inner": map[string]any{"call": m.FuncStub{Returns: true}},
	})

	assert.Equal(t, map[string]any{
		"fn":    throw,
		"value": 3.0,
		"inner": map[string]any{"call": throw},
	}, got)
}
