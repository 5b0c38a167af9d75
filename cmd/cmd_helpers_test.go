package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	domainmocks "github.com/mouse-blink/covdungeon/internal/domain/mocks"
)

// newTestRoot builds a root command around sub with a mocked workflow and
// an isolated settings file.
func newTestRoot(t *testing.T, sub *cobra.Command) (*cobra.Command, *domainmocks.MockWorkflow, *bytes.Buffer) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow, originalSettings := workflow, settings
	workflow = mockWorkflow

	t.Cleanup(func() {
		workflow = originalWorkflow
		settings = originalSettings
	})

	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.AddCommand(sub)
	cmd.SetOut(out)
	cmd.SetErr(out)

	return cmd, mockWorkflow, out
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
