package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/covdungeon/internal/domain"
)

var historyFnFlag string

// historyCmd represents the history command.
var historyCmd = newHistoryCmd()

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history FILE",
		Short: "Show stored runs of a function",
		Long:  "Show the runs stored for a function and the coverage they add up to.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.History(cmd.Context(), domain.HistoryArgs{
				LevelArgs: levelArgs(args, historyFnFlag),
			})
		},
	}
	cmd.Flags().StringVarP(&historyFnFlag, "fn", "f", "", "function whose history to show")

	return cmd
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
