package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"sentryctl/internal/config"
)

// executeCommand runs the root command with args and captures its output.
// Tests pass every flag they depend on explicitly, since flag values persist
// across executions within the test binary.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvToken, "")
	t.Setenv(config.EnvHost, "")
	t.Setenv(config.EnvURL, "")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// tempConfigPath returns a config file path in a fresh temp dir so tests
// never touch the real ~/.config/sentry/config.json.
func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}
