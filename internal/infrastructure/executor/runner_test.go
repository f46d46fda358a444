package executor

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skip on windows: tests use POSIX shell syntax")
	}
}

func TestRunCapturesAndStreamsOutput(t *testing.T) {
	skipOnWindows(t)
	var live bytes.Buffer
	runner := NewRunner(Options{Stdout: &live, Stderr: &live})

	outcome, err := runner.Run(context.Background(), "echo hello; echo warn 1>&2", 5*time.Second)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Stdout != "hello" {
		t.Fatalf("Stdout = %q, want hello", outcome.Stdout)
	}
	if outcome.Stderr != "warn" {
		t.Fatalf("Stderr = %q, want warn", outcome.Stderr)
	}
	if !strings.Contains(live.String(), "hello") || !strings.Contains(live.String(), "warn") {
		t.Fatalf("expected live output, got %q", live.String())
	}
}

func TestRunNonZeroExit(t *testing.T) {
	skipOnWindows(t)
	runner := NewRunner(Options{})

	_, err := runner.Run(context.Background(), "echo broken 1>&2; exit 3", 5*time.Second)
	var execErr *domain.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %v", err)
	}
	if execErr.Kind != domain.ExecNonZeroExit || execErr.ExitCode != 3 {
		t.Fatalf("unexpected error %+v", execErr)
	}
	if execErr.Detail != "Command failed (exit code 3):\nbroken" {
		t.Fatalf("Detail = %q", execErr.Detail)
	}
}

func TestRunNonZeroExitWithoutStderr(t *testing.T) {
	skipOnWindows(t)
	runner := NewRunner(Options{})

	_, err := runner.Run(context.Background(), "exit 1", 5*time.Second)
	var execErr *domain.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %v", err)
	}
	if !strings.HasPrefix(execErr.Detail, "Command failed (exit code 1):\n") {
		t.Fatalf("Detail = %q", execErr.Detail)
	}
	if strings.TrimPrefix(execErr.Detail, "Command failed (exit code 1):\n") == "" {
		t.Fatal("expected error text when stderr is empty")
	}
}

func TestRunTimeoutKillsProcessGroup(t *testing.T) {
	skipOnWindows(t)
	runner := NewRunner(Options{})

	start := time.Now()
	_, err := runner.Run(context.Background(), "sleep 5 & sleep 5; wait", 200*time.Millisecond)
	elapsed := time.Since(start)

	var execErr *domain.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %v", err)
	}
	if !execErr.IsTimeout() {
		t.Fatalf("expected timeout, got %+v", execErr)
	}
	if execErr.Detail != "Command timed out after 0.2 seconds." {
		t.Fatalf("Detail = %q", execErr.Detail)
	}
	if elapsed > 4*time.Second {
		t.Fatalf("runner waited %v; child group was not killed", elapsed)
	}
}

func TestRunParentCancellationIsUnknown(t *testing.T) {
	skipOnWindows(t)
	runner := NewRunner(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	_, err := runner.Run(ctx, "sleep 5", 5*time.Second)
	var execErr *domain.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %v", err)
	}
	if execErr.Kind != domain.ExecUnknown {
		t.Fatalf("Kind = %s, want unknown", execErr.Kind)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected wrapped context.Canceled, got %v", err)
	}
}

func TestRunMissingShellIsUnknown(t *testing.T) {
	runner := NewRunner(Options{Shell: "/nonexistent/shell"})

	_, err := runner.Run(context.Background(), "true", time.Second)
	var execErr *domain.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %v", err)
	}
	if execErr.Kind != domain.ExecUnknown {
		t.Fatalf("Kind = %s, want unknown", execErr.Kind)
	}
}

func TestRunBoundsCapturedOutput(t *testing.T) {
	skipOnWindows(t)
	runner := NewRunner(Options{MaxCapture: 16})

	outcome, err := runner.Run(context.Background(), "printf '%0100d' 0", 5*time.Second)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcome.Stdout) != 16 {
		t.Fatalf("captured %d bytes, want 16", len(outcome.Stdout))
	}
	if !outcome.Truncated {
		t.Fatal("expected truncation flag")
	}
}

func TestShellArgs(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{shell: "/bin/bash", want: []string{"-c", "ls"}},
		{shell: "powershell.exe", want: []string{"-NoProfile", "-NonInteractive", "-Command", "$ErrorActionPreference = 'Stop'; ls"}},
		{shell: "pwsh", want: []string{"-NoProfile", "-NonInteractive", "-Command", "$ErrorActionPreference = 'Stop'; ls"}},
		{shell: `C:\Windows\System32\cmd.exe`, want: []string{"/C", "ls"}},
	}
	for _, tt := range tests {
		got := shellArgs(tt.shell, "ls")
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("shellArgs(%q) = %q, want %q", tt.shell, got, tt.want)
		}
	}
}

func TestBoundedBufferReportsFullWrites(t *testing.T) {
	buf := newBoundedBuffer(4)
	n, err := buf.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("Write() = %d, %v; want 6, nil", n, err)
	}
	if buf.String() != "abcd" || !buf.Truncated() {
		t.Fatalf("buffer = %q truncated=%v", buf.String(), buf.Truncated())
	}
}
