package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/covdungeon/internal/domain"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

var runFnFlag string
var runStubFlags []string
var runResetFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

const runLongDescription = `Run a function once with the given stubs and collect the gems it reaches.

Stubs are name=value pairs. Values are JSON when they parse as JSON, so
x=15, name='"bob"' and ok=true give a number, a string and a boolean; any
other text is taken as a string. A js: prefix makes the value JavaScript,
for example fetchUser='js:async (id) => ({ id })'. Dotted names build
objects: db.ready=true.

Coverage accumulates across runs of the same function until --reset.`

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a function and collect gems",
		Long:  runLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stubs, err := parseStubs(runStubFlags)
			if err != nil {
				return err
			}

			return workflow.Run(cmd.Context(), domain.RunArgs{
				LevelArgs: levelArgs(args, runFnFlag),
				Stubs:     m.MergeStubs(settings.StubsFor(runFnFlag), stubs),
				Reset:     runResetFlag,
			})
		},
	}
	cmd.Flags().StringVarP(&runFnFlag, "fn", "f", "", "function to run (default: first function in the file)")
	cmd.Flags().StringArrayVarP(&runStubFlags, "stub", "s", nil, "stub as name=value (can be repeated)")
	cmd.Flags().BoolVar(&runResetFlag, "reset", false, "clear the function's run history first")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
