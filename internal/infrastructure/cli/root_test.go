package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("NOVA_API_KEY", "")
	return newRootAt(t, filepath.Join(home, "config.yaml"))
}

func newRootAt(t *testing.T, configPath string) *cobra.Command {
	t.Helper()
	root, cleanup, err := NewRootCmd(context.Background(), Options{ConfigPath: configPath})
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return root
}

func runRoot(root *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandTree(t *testing.T) {
	root := newTestRoot(t)

	for _, name := range []string{"ask", "auth", "model", "theme", "reset", "remember", "memory", "audit", "rules", "doctor", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		require.Equal(t, name, cmd.Name())
	}

	// free text falls through to the root command
	cmd, args, err := root.Find([]string{"list", "files", "here"})
	require.NoError(t, err)
	require.Equal(t, root, cmd)
	require.Equal(t, []string{"list", "files", "here"}, args)
}

func TestRootRunsSubcommands(t *testing.T) {
	root := newTestRoot(t)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"theme", "list"})

	require.NoError(t, root.ExecuteContext(context.Background()))
	require.Contains(t, out.String(), "* default")
}

func TestInvalidConfigLeavesMaintenanceCommandsUsable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("NOVA_API_KEY", "")
	cfgPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("theme: neon\n"), 0o600))

	out, err := runRoot(newRootAt(t, cfgPath), "doctor")
	require.ErrorContains(t, err, "unknown theme")
	require.Contains(t, out, "[ERROR] Config file - load failed")
	require.Contains(t, out, "unknown theme")

	out, err = runRoot(newRootAt(t, cfgPath), "version", "--short")
	require.NoError(t, err)
	require.NotEmpty(t, strings.TrimSpace(out))

	_, err = runRoot(newRootAt(t, cfgPath), "list", "files")
	require.ErrorContains(t, err, "unknown theme")

	_, err = runRoot(newRootAt(t, cfgPath), "theme", "set", "ocean")
	require.NoError(t, err)

	out, err = runRoot(newRootAt(t, cfgPath), "theme", "list")
	require.NoError(t, err)
	require.Contains(t, out, "* ocean")
}

func TestAskFlags(t *testing.T) {
	var flags askFlags
	cmd := &cobra.Command{Use: "ask"}
	bindAskFlags(cmd, &flags)

	require.NoError(t, cmd.ParseFlags([]string{"-f", "a.log", "--file", "b.txt", "-y", "--copy", "--timeout", "45s"}))
	require.Equal(t, []string{"a.log", "b.txt"}, flags.files)
	require.True(t, flags.yes)
	require.True(t, flags.copy)
	require.Equal(t, 45*time.Second, flags.timeout)
}

func TestRunAskRejectsBlankPrompt(t *testing.T) {
	err := runAsk(&cobra.Command{}, nil, []string{"  "}, askFlags{})
	require.EqualError(t, err, "a prompt is required")

	err = runAsk(&cobra.Command{}, nil, []string{"list"}, askFlags{timeout: -time.Second})
	require.EqualError(t, err, "--timeout must not be negative")
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 1}
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, "exit status 1", err.Error())
}
