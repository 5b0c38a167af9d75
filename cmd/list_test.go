package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/covdungeon/internal/domain"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

func TestListCmd(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		config string
		want   domain.ListArgs
	}{
		{
			name: "defaults",
			args: []string{"list"},
			want: domain.ListArgs{Paths: []m.Path{"./..."}, Parallel: 4},
		},
		{
			name: "paths parallel and json",
			args: []string{"list", "./src/...", "a.js", "-p", "2", "--json"},
			want: domain.ListArgs{Paths: []m.Path{"./src/...", "a.js"}, Parallel: 2, JSON: true},
		},
		{
			name:   "parallel from settings",
			args:   []string{"list", "lib"},
			config: "list:\n  parallel: 9\n",
			want:   domain.ListArgs{Paths: []m.Path{"lib"}, Parallel: 9},
		},
		{
			name: "non-positive parallel falls back",
			args: []string{"list", "--parallel", "-1"},
			want: domain.ListArgs{Paths: []m.Path{"./..."}, Parallel: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow, _ := newTestRoot(t, newListCmd())

			mockWorkflow.EXPECT().List(mock.Anything, tt.want).Return(nil)

			args := tt.args
			if tt.config != "" {
				args = append(args, "--config", writeConfig(t, tt.config))
			}

			cmd.SetArgs(args)
			require.NoError(t, cmd.Execute())
		})
	}
}
