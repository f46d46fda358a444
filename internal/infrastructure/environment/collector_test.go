package environment

import (
	"context"
	"os"
	"runtime"
	"testing"
)

func TestCollectDescribesHost(t *testing.T) {
	t.Setenv("USER", "nova-tester")
	collector := NewCollector("/bin/bash")

	snapshot := collector.Collect(context.Background())
	if snapshot.OS != runtime.GOOS || snapshot.Arch != runtime.GOARCH {
		t.Fatalf("unexpected platform %s/%s", snapshot.OS, snapshot.Arch)
	}
	if snapshot.ShellName != "bash" {
		t.Fatalf("ShellName = %q, want bash", snapshot.ShellName)
	}
	if snapshot.HomeDir == "" {
		t.Fatal("expected home dir")
	}
	wd, _ := os.Getwd()
	if snapshot.WorkingDir != wd {
		t.Fatalf("WorkingDir = %q, want %q", snapshot.WorkingDir, wd)
	}
	if runtime.GOOS != "windows" && snapshot.User != "nova-tester" {
		t.Fatalf("User = %q", snapshot.User)
	}
}

func TestCollectDetectsConfiguredTools(t *testing.T) {
	collector := NewCollector("/bin/sh")
	collector.toolsToCheck = []string{"definitely-not-a-real-tool-xyz"}

	snapshot := collector.Collect(context.Background())
	if len(snapshot.AvailableTools) != 0 {
		t.Fatalf("expected no tools, got %v", snapshot.AvailableTools)
	}
}

func TestGitBranchOutsideRepository(t *testing.T) {
	collector := NewCollector("/bin/sh")
	if branch := collector.gitBranch(context.Background(), t.TempDir()); branch != "" {
		t.Fatalf("expected no branch, got %q", branch)
	}
}

func TestShellName(t *testing.T) {
	tests := map[string]string{
		"/bin/bash":          "bash",
		"/usr/bin/zsh":       "zsh",
		"powershell.exe":     "PowerShell",
		"pwsh":               "PowerShell",
		`C:\Windows\cmd.exe`: "cmd.exe",
	}
	for shell, want := range tests {
		if got := shellName(shell); got != want {
			t.Errorf("shellName(%q) = %q, want %q", shell, got, want)
		}
	}
}
