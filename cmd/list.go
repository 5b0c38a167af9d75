package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/covdungeon/internal/domain"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()
var listParallelFlag int
var listJSONFlag bool

const listLongDescription = `Generate the dungeon of every JavaScript file under the given paths and
print its gem and fork counts. Test, spec and minified files are skipped.`

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List levels and their gem counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			parallel := listParallelFlag
			if parallel <= 0 {
				parallel = settings.List.Parallel
			}

			return workflow.List(cmd.Context(), domain.ListArgs{
				Paths:    parsePaths(args),
				Parallel: parallel,
				JSON:     listJSONFlag,
			})
		},
	}
	cmd.Flags().IntVarP(&listParallelFlag, "parallel", "p", 0, "number of levels generated concurrently (default from settings)")
	cmd.Flags().BoolVar(&listJSONFlag, "json", false, "print the levels as JSON")

	return cmd
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"./..."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func init() {
	rootCmd.AddCommand(listCmd)
}
