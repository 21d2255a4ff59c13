package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/u8slvn/otp-76/internal/config"
	"github.com/u8slvn/otp-76/internal/otp"
	"github.com/u8slvn/otp-76/internal/output"
)

var errNoPrompt = errors.New("no prompt in tests")

// setupTestEnv points the CLI globals at a fresh home directory and
// restores them when the test ends. Tests using it must not run in parallel.
func setupTestEnv(t *testing.T) string {
	t.Helper()

	origCfg := cfg
	origLogger := logger
	origFormatter := formatter
	origPrompt := promptPasswordFn

	tmpDir := t.TempDir()

	testCfg := config.Defaults()
	testCfg.Home = tmpDir
	testCfg.Logging.File = ""
	cfg = testCfg
	logger = config.NullLogger()
	formatter = output.NewFormatter(output.FormatText, os.Stdout)
	promptPasswordFn = func(_ string) ([]byte, error) { return nil, errNoPrompt }

	createPads, createKeys, createFile, createEncrypt = "", "", "", false
	padsFile = ""
	configForce = false
	t.Setenv(config.EnvPassword, "")

	t.Cleanup(func() {
		cfg = origCfg
		logger = origLogger
		formatter = origFormatter
		promptPasswordFn = origPrompt
		createPads, createKeys, createFile, createEncrypt = "", "", "", false
		padsFile = ""
		configForce = false
	})

	return tmpDir
}

// useJSON switches the formatter to JSON for the rest of the test.
func useJSON(t *testing.T) {
	t.Helper()
	formatter = output.NewFormatter(output.FormatJSON, os.Stdout)
}

// newTestCmd returns a command whose output is captured in the buffer.
func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return cmd, &buf
}

// writeFixture stores a plain collection with the given pads in the
// configured pad file.
func writeFixture(t *testing.T, pads map[string][]uint8, order ...string) string {
	t.Helper()

	c := otp.NewCollection()
	for _, id := range order {
		pad, err := otp.NewPad(id, pads[id])
		require.NoError(t, err)
		c.Add(pad)
	}

	path := cfg.PadsFile()
	require.NoError(t, otp.NewFileStore(path).Save(c, nil))
	require.FileExists(t, filepath.Clean(path))
	return path
}
