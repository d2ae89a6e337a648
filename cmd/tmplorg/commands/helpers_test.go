package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// resetCommandState clears flag values and configuration left behind by a
// previous command execution.
func resetCommandState(t *testing.T) {
	t.Helper()

	require.NoError(t, closeLogFile())
	t.Cleanup(func() { _ = closeLogFile() })

	verbosity, quiet = 0, false
	logFormat, logFile, configFile = "text", "", ""
	resolveJSON, resolveSource = false, ""
	loadedConfig, configLoadErr = nil, nil

	for _, f := range layoutFlags {
		flag := rootCmd.PersistentFlags().Lookup(f.name)
		require.NoError(t, flag.Value.Set(""))
		flag.Changed = false
	}
	for _, name := range []string{"verbose", "quiet", "log-format", "log-file", "config"} {
		rootCmd.PersistentFlags().Lookup(name).Changed = false
	}
	for _, name := range []string{"json", "source"} {
		resolveCmd.Flags().Lookup(name).Changed = false
	}

	viper.Reset()
	bindLayoutFlags()
	t.Cleanup(func() {
		viper.Reset()
		bindLayoutFlags()
	})
}

// newProject creates a project root with the default layout, stages the
// given templates, writes the index and makes the root the working
// directory.
func newProject(t *testing.T, indexLines []string, staged ...string) string {
	t.Helper()
	resetCommandState(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte("[workspace]\n"), 0o644))
	staging := filepath.Join(root, "tmp")
	require.NoError(t, os.MkdirAll(staging, 0o755))
	if indexLines != nil {
		index := strings.Join(indexLines, "\n") + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(staging, "index"), []byte(index), 0o644))
	}
	for _, name := range staged {
		require.NoError(t, os.WriteFile(filepath.Join(staging, name), []byte("Value X (.*)\n"), 0o644))
	}

	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, ".xdg"))
	xdg.Reload()
	t.Chdir(root)
	return root
}

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}
