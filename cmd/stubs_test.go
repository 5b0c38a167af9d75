package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

func TestParseStubs(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
		want  map[string]any
	}{
		{name: "none", pairs: nil, want: map[string]any{}},
		{name: "number", pairs: []string{"x=15"}, want: map[string]any{"x": 15.0}},
		{name: "quoted string", pairs: []string{`name="bob"`}, want: map[string]any{"name": "bob"}},
		{name: "bare string", pairs: []string{"status=ok"}, want: map[string]any{"status": "ok"}},
		{name: "boolean and null", pairs: []string{"ok=true", "v=null"}, want: map[string]any{"ok": true, "v": nil}},
		{name: "json object", pairs: []string{`user={"age":20}`}, want: map[string]any{"user": map[string]any{"age": 20.0}}},
		{name: "script", pairs: []string{"f=js:() => 1"}, want: map[string]any{"f": "js:() => 1"}},
		{name: "undefined", pairs: []string{"x=undefined"}, want: map[string]any{"x": m.Undefined}},
		{name: "value keeps equals signs", pairs: []string{"q=a=b"}, want: map[string]any{"q": "a=b"}},
		{name: "empty value", pairs: []string{"s="}, want: map[string]any{"s": ""}},
		{
			name:  "dotted names nest",
			pairs: []string{"user.age=23", "user.active=true", "db.conn.ready=false"},
			want: map[string]any{
				"user": map[string]any{"age": 23.0, "active": true},
				"db":   map[string]any{"conn": map[string]any{"ready": false}},
			},
		},
		{name: "later flag wins", pairs: []string{"x=1", "x=2"}, want: map[string]any{"x": 2.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStubs(tt.pairs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStubs_Errors(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
		want  string
	}{
		{name: "missing equals", pairs: []string{"x"}, want: `invalid stub "x", expected name=value`},
		{name: "missing name", pairs: []string{"=1"}, want: `invalid stub "=1", expected name=value`},
		{name: "value then field", pairs: []string{"user=1", "user.age=2"}, want: "user is already set to a value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseStubs(tt.pairs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParsePaths(t *testing.T) {
	assert.Equal(t, []m.Path{"./..."}, parsePaths(nil))
	assert.Equal(t, []m.Path{"a.js", "./lib/..."}, parsePaths([]string{"a.js", "./lib/..."}))
}

func TestLevelArgs(t *testing.T) {
	args := levelArgs([]string{"src/grade.js"}, "grade")

	assert.Equal(t, m.Path("src/grade.js"), args.Path)
	assert.Equal(t, "grade", args.Function)
}
