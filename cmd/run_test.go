package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/covdungeon/internal/domain"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

func TestRunCmd(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		config string
		want   domain.RunArgs
	}{
		{
			name: "first function without stubs",
			args: []string{"run", "a.js"},
			want: domain.RunArgs{
				LevelArgs: domain.LevelArgs{Path: "a.js"},
				Stubs:     map[string]any{},
			},
		},
		{
			name: "function stubs and reset",
			args: []string{"run", "a.js", "--fn", "checkValue", "-s", "x=15", "--stub", "flag=true", "--reset"},
			want: domain.RunArgs{
				LevelArgs: domain.LevelArgs{Path: "a.js", Function: "checkValue"},
				Stubs:     map[string]any{"x": 15.0, "flag": true},
				Reset:     true,
			},
		},
		{
			name:   "settings stubs sit under flags",
			args:   []string{"run", "a.js", "-f", "checkValue", "-s", "x=15"},
			config: "stubs:\n  checkValue:\n    db: \"js:() => 1\"\n    x: 1\n  other:\n    y: 2\n",
			want: domain.RunArgs{
				LevelArgs: domain.LevelArgs{Path: "a.js", Function: "checkValue"},
				Stubs:     map[string]any{"db": "js:() => 1", "x": 15.0},
			},
		},
		{
			name:   "nested settings stubs keep siblings",
			args:   []string{"run", "a.js", "-f", "load", "-s", "db.ready=true"},
			config: "stubs:\n  load:\n    db:\n      find: \"js:(id) => ({ id })\"\n",
			want: domain.RunArgs{
				LevelArgs: domain.LevelArgs{Path: "a.js", Function: "load"},
				Stubs:     map[string]any{"db": map[string]any{"find": "js:(id) => ({ id })", "ready": true}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow, _ := newTestRoot(t, newRunCmd())

			mockWorkflow.EXPECT().Run(mock.Anything, tt.want).Return(nil)

			args := tt.args
			if tt.config != "" {
				args = append(args, "--config", writeConfig(t, tt.config))
			}

			cmd.SetArgs(args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestRunCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing file", args: []string{"run"}, want: "accepts 1 arg(s)"},
		{name: "bad stub", args: []string{"run", "a.js", "-s", "x"}, want: "expected name=value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, _ := newTestRoot(t, newRunCmd())

			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPlayCmd(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newPlayCmd())
	config := writeConfig(t, "stubs:\n  grade:\n    bonus: 5\n")

	mockWorkflow.EXPECT().Play(mock.Anything, domain.PlayArgs{
		LevelArgs: domain.LevelArgs{Path: m.Path("lib/grade.js"), Function: "grade"},
		Defaults:  map[string]any{"bonus": 5, "user": map[string]any{"name": "ann"}},
	}).Return(nil)

	cmd.SetArgs([]string{"play", "lib/grade.js", "--fn", "grade", "-s", `user.name="ann"`, "-c", config})
	require.NoError(t, cmd.Execute())
}

func TestGenerateCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.GenerateArgs
	}{
		{
			name: "map",
			args: []string{"generate", "a.js"},
			want: domain.GenerateArgs{LevelArgs: domain.LevelArgs{Path: "a.js"}},
		},
		{
			name: "json for one function",
			args: []string{"generate", "a.js", "-f", "grade", "--json"},
			want: domain.GenerateArgs{LevelArgs: domain.LevelArgs{Path: "a.js", Function: "grade"}, JSON: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow, _ := newTestRoot(t, newGenerateCmd())

			mockWorkflow.EXPECT().Generate(mock.Anything, tt.want).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestHistoryCmd(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newHistoryCmd())

	mockWorkflow.EXPECT().History(mock.Anything, domain.HistoryArgs{
		LevelArgs: domain.LevelArgs{Path: "a.js", Function: "checkValue"},
	}).Return(nil)

	cmd.SetArgs([]string{"history", "a.js", "--fn", "checkValue"})
	require.NoError(t, cmd.Execute())
}
