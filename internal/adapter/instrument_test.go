package adapter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

const checkSource = "function check(x) {\n  if (x > 10) {\n    return 'big';\n  }\n  return 'small';\n}\n"

func instrumentSource(t *testing.T, src string) *Instrumented {
	t.Helper()

	out, err := NewInstrumenter().Instrument(parseSource(t, src))
	require.NoError(t, err)

	return out
}

func TestSourceInstrumenter_Rewrite(t *testing.T) {
	out := instrumentSource(t, checkSource)

	want := "function check(x) {__dungeon_cov.f[0]++;\n" +
		"  __dungeon_cov.s[0]++;if (x > 10) {__dungeon_cov.b[0][0]++;\n" +
		"    __dungeon_cov.s[1]++;return 'big';\n" +
		"  } else { __dungeon_cov.b[0][1]++; }\n" +
		"  __dungeon_cov.s[2]++;return 'small';\n" +
		"}\n"
	assert.Equal(t, want, out.Code)

	assert.Equal(t, map[int]m.Location{
		0: {Start: m.Position{Line: 2, Column: 2}, End: m.Position{Line: 4, Column: 3}},
		1: {Start: m.Position{Line: 3, Column: 4}, End: m.Position{Line: 3, Column: 17}},
		2: {Start: m.Position{Line: 5, Column: 2}, End: m.Position{Line: 5, Column: 17}},
	}, out.Record.StatementMap)
	assert.Equal(t, map[int]int{0: 0, 1: 0, 2: 0}, out.Record.S)
	assert.Equal(t, map[int][]int{0: {0, 0}}, out.Record.B)
	assert.Equal(t, "if", out.Record.BranchMap[0].Type)
	assert.Equal(t, "check", out.Record.FnMap[0].Name)
	assert.Equal(t, map[int]int{0: 0}, out.Record.F)
}

func TestSourceInstrumenter_Preamble(t *testing.T) {
	out := instrumentSource(t, checkSource)

	preamble, err := out.Preamble()
	require.NoError(t, err)

	assert.Equal(t, `var __dungeon_cov = {"b":{"0":[0,0]},"f":{"0":0},"s":{"0":0,"1":0,"2":0}};`, preamble)
}

func TestSourceInstrumenter_Constructs(t *testing.T) {
	tests := []struct {
		name         string
		src          string
		statements   int
		branches     int
		functions    int
		branchTypes  []string
		wantContains []string
		wantMissing  []string
	}{
		{
			name:        "else if chain",
			src:         "function f(a) { if (a > 1) return 1; else if (a > 0) return 0; else return -1; }",
			statements:  5,
			branches:    2,
			functions:   1,
			branchTypes: []string{"if", "if"},
		},
		{
			name:        "switch with default",
			src:         "function f(k) { switch (k) { case 'a': return 1; case 'b': case 'c': k = 2; break; default: return 0; } return k; }",
			statements:  6,
			branches:    1,
			functions:   1,
			branchTypes: []string{"switch"},
		},
		{
			name:         "arrow expression body and ternary",
			src:          "const pick = (x) => x > 0 ? 'pos' : 'neg';",
			statements:   2,
			branches:     1,
			functions:    1,
			branchTypes:  []string{"cond-expr"},
			wantContains: []string{"return (", "(__dungeon_cov.b[0][0]++, 'pos')"},
		},
		{
			name:         "logical operators",
			src:          "function ok(u) { return u && u.active || false; }",
			statements:   1,
			branches:     2,
			functions:    1,
			branchTypes:  []string{"binary-expr", "binary-expr"},
			wantContains: []string{"__dungeon_cov.b[0][1]++"},
		},
		{
			name:         "loops and labels",
			src:          "function f(xs) { let n = 0; outer: for (const x of xs) { while (n < x) n++; if (x < 0) continue outer; } do n--; while (n > 10); return n; }",
			statements:   9,
			branches:     1,
			functions:    1,
			branchTypes:  []string{"if"},
			wantContains: []string{"outer: for"},
		},
		{
			name:       "try catch finally",
			src:        "async function load(db) { try { return await db.get(); } catch (e) { log(e); return null; } finally { done(); } }",
			statements: 5,
			branches:   0,
			functions:  1,
		},
		{
			name:         "module syntax is stripped",
			src:          "import db from './db';\nexport function get(id) { return db.find(id); }\nexport { get as fetch };\nexport default (x) => x;",
			statements:   3,
			branches:     0,
			functions:    2,
			wantContains: []string{"var __default = "},
			wantMissing:  []string{"import", "export"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := instrumentSource(t, tt.src)

			assert.Len(t, out.Record.S, tt.statements)
			assert.Len(t, out.Record.B, tt.branches)
			assert.Len(t, out.Record.F, tt.functions)

			for i, kind := range tt.branchTypes {
				assert.Equal(t, kind, out.Record.BranchMap[i].Type)
			}

			for _, s := range tt.wantContains {
				assert.Contains(t, out.Code, s)
			}

			for _, s := range tt.wantMissing {
				assert.NotContains(t, out.Code, s)
			}

			// The rewritten program must still be valid JavaScript.
			reparsed, err := NewTreeSitterParser().Parse(context.Background(), []byte(out.Code))
			require.NoError(t, err, out.Code)
			reparsed.Close()
		})
	}
}

func TestSourceInstrumenter_StableIDs(t *testing.T) {
	first := instrumentSource(t, checkSource)
	second := instrumentSource(t, checkSource)

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Record, second.Record)
	assert.True(t, strings.Index(first.Code, "s[0]") < strings.Index(first.Code, "s[1]"))
}

func TestSourceInstrumenter_NilProgram(t *testing.T) {
	_, err := NewInstrumenter().Instrument(nil)
	require.Error(t, err)
}
