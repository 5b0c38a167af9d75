package controller

import (
	"os"

	"github.com/spf13/cobra"
)

// NewUI returns the bubbletea TUI when useTTY is set and the command's input
// is a terminal too, and the line-based SimpleUI otherwise. Play reads
// keypresses from input, so piped option choices such as
// `printf '1\nq\n' | covdungeon play a.js` must go to SimpleUI even when
// stdout is a terminal.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY && IsTTY(cmd.InOrStdin()) {
		return NewTUI(cmd.OutOrStdout(), cmd.InOrStdin())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether stream is an *os.File attached to a character
// device. Buffers, pipes and regular files are not terminals.
func IsTTY(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
