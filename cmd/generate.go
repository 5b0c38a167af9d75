package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/covdungeon/internal/domain"
)

var generateFnFlag string
var generateJSONFlag bool

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate FILE",
		Short: "Print the dungeon of a function",
		Long:  "Generate the dungeon map of a function and list the options that drive each fork.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Generate(cmd.Context(), domain.GenerateArgs{
				LevelArgs: levelArgs(args, generateFnFlag),
				JSON:      generateJSONFlag,
			})
		},
	}
	cmd.Flags().StringVarP(&generateFnFlag, "fn", "f", "", "function to generate (default: first function in the file)")
	cmd.Flags().BoolVar(&generateJSONFlag, "json", false, "print the dungeon as JSON")

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
