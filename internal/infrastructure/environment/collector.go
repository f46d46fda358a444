package environment

import (
	"context"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/pkg/filesystem"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// Collector implements ports.EnvironmentCollector with host and tool detection.
type Collector struct {
	shell        string
	toolsToCheck []string
	probeTimeout time.Duration
}

// NewCollector describes a host whose commands run through shell.
func NewCollector(shell string) *Collector {
	return &Collector{
		shell:        shell,
		toolsToCheck: []string{"docker", "kubectl", "git", "npm", "yarn", "pnpm", "python", "python3", "go", "node", "cargo", "make", "winget", "brew", "apt"},
		probeTimeout: 2 * time.Second,
	}
}

// Collect implements ports.EnvironmentCollector.
func (c *Collector) Collect(ctx context.Context) domain.EnvironmentSnapshot {
	wd, _ := os.Getwd()
	return domain.EnvironmentSnapshot{
		OS:             runtime.GOOS,
		Release:        kernelRelease(),
		Arch:           runtime.GOARCH,
		Shell:          c.shell,
		ShellName:      shellName(c.shell),
		HomeDir:        filesystem.UserHomeDir(),
		WorkingDir:     wd,
		User:           currentUser(),
		AvailableTools: c.detectTools(),
		GitBranch:      c.gitBranch(ctx, wd),
	}
}

func (c *Collector) detectTools() []string {
	var available []string
	for _, tool := range c.toolsToCheck {
		if _, err := exec.LookPath(tool); err == nil {
			available = append(available, tool)
		}
	}
	sort.Strings(available)
	return available
}

func (c *Collector) gitBranch(ctx context.Context, dir string) string {
	if dir == "" {
		return ""
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return ""
	}
	return strings.TrimSpace(c.runCmd(ctx, dir, "git", "rev-parse", "--abbrev-ref", "HEAD"))
}

func (c *Collector) runCmd(ctx context.Context, dir string, name string, args ...string) string {
	cctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()
	cmd := exec.CommandContext(cctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return string(out)
}

// shellName is the label used in prompts: PowerShell on Windows, bash/zsh style otherwise.
func shellName(shell string) string {
	base := shellBase(shell)
	switch base {
	case "powershell", "pwsh":
		return "PowerShell"
	case "cmd":
		return "cmd.exe"
	case "", ".":
		if runtime.GOOS == "windows" {
			return "PowerShell"
		}
		return "bash/zsh"
	default:
		return base
	}
}

func currentUser() string {
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

var _ ports.EnvironmentCollector = (*Collector)(nil)

// shellBase lowercases the interpreter's file name without extension,
// accepting either path separator.
func shellBase(shell string) string {
	base := path.Base(strings.ReplaceAll(shell, `\`, "/"))
	return strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
}
