package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

func newPlainReporter(streaming bool) (*Reporter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	r := NewReporter(ReporterOptions{
		Out:       &out,
		Err:       &errOut,
		Theme:     domain.ThemeDefault,
		Profile:   termenv.Ascii,
		Streaming: streaming,
		Width:     60,
	})
	return r, &out, &errOut
}

func TestReporterMessage(t *testing.T) {
	r, out, _ := newPlainReporter(true)

	r.Message("  Here are your files.  ")
	r.Message("   ")

	require.Equal(t, "✨ Nova: Here are your files.\n", out.String())
}

func TestReporterCommandBadges(t *testing.T) {
	r, out, _ := newPlainReporter(true)

	r.Command("ls -la", domain.Safe())
	require.Contains(t, out.String(), "SAFE")
	require.Contains(t, out.String(), "$ ls -la")
	require.NotContains(t, out.String(), "CAUTION")

	out.Reset()
	r.Command("sudo apt upgrade", domain.Warned("Runs with elevated privileges (sudo)"))
	require.Contains(t, out.String(), "CAUTION")
	require.Contains(t, out.String(), "$ sudo apt upgrade")
}

func TestReporterCommandBoxWraps(t *testing.T) {
	r, out, _ := newPlainReporter(true)

	r.Command("echo "+strings.Repeat("x", 120), domain.Safe())

	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		require.LessOrEqual(t, len([]rune(line)), 60, "line %q exceeds width", line)
	}
}

func TestReporterBlocked(t *testing.T) {
	r, out, _ := newPlainReporter(true)

	r.Blocked(domain.Blocked("Recursive deletion of the root directory"))

	text := out.String()
	require.Contains(t, text, BlockedHeadline)
	require.Contains(t, text, "Reason: Recursive deletion of the root directory")
	require.Contains(t, text, BlockedFooter)
}

func TestReporterStatusLinesUseStreams(t *testing.T) {
	r, out, errOut := newPlainReporter(true)

	r.Info("Operation cancelled.")
	r.Success("Command completed successfully.")
	r.Warning("Warning: risky")
	r.Failure("Command failed (exit code 1):")

	require.Equal(t, "Operation cancelled.\n✔ Command completed successfully.\n", out.String())
	require.Equal(t, "⚠ Warning: risky\n✖ Command failed (exit code 1):\n", errOut.String())
}

func TestReporterOutput(t *testing.T) {
	t.Run("streaming only reports truncation", func(t *testing.T) {
		r, out, errOut := newPlainReporter(true)
		r.Output(domain.ExecutionOutcome{Stdout: "a\n", Stderr: "b\n"})
		require.Empty(t, out.String())
		require.Empty(t, errOut.String())

		r.Output(domain.ExecutionOutcome{Stdout: "a", Truncated: true})
		require.Equal(t, TruncatedNotice+"\n", out.String())
	})

	t.Run("buffered output is echoed", func(t *testing.T) {
		r, out, errOut := newPlainReporter(false)
		r.Output(domain.ExecutionOutcome{Stdout: "file.txt", Stderr: "note\n"})
		require.Equal(t, "file.txt\n", out.String())
		require.Equal(t, "note\n", errOut.String())
	})
}

func TestHighlightShellKeepsText(t *testing.T) {
	highlighted := highlightShell("echo hello", "monokai")
	require.Contains(t, highlighted, "echo")
	require.Contains(t, highlighted, "hello")

	require.Contains(t, highlightShell("ls", "no-such-style"), "ls")
}

func TestPaletteForFallsBack(t *testing.T) {
	require.Equal(t, palettes[domain.ThemeDefault], PaletteFor("neon"))
	for _, name := range domain.ThemeNames {
		require.NotEmpty(t, PaletteFor(name).Syntax, name)
	}
}
