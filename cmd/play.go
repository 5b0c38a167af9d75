package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/covdungeon/internal/domain"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

var playFnFlag string
var playStubFlags []string

// playCmd represents the play command.
var playCmd = newPlayCmd()

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play FILE",
		Short: "Explore a function's dungeon interactively",
		Long: `Open the dungeon of a function and pick fork options to run it with.
Collected gems stay lit across runs. --stub values are merged under every
option, see "covdungeon run --help" for their syntax.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stubs, err := parseStubs(playStubFlags)
			if err != nil {
				return err
			}

			return workflow.Play(cmd.Context(), domain.PlayArgs{
				LevelArgs: levelArgs(args, playFnFlag),
				Defaults:  m.MergeStubs(settings.StubsFor(playFnFlag), stubs),
			})
		},
	}
	cmd.Flags().StringVarP(&playFnFlag, "fn", "f", "", "function to play (default: first function in the file)")
	cmd.Flags().StringArrayVarP(&playStubFlags, "stub", "s", nil, "default stub as name=value (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(playCmd)
}
