package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// killGrace bounds how long Wait keeps copying output after the process group is killed.
const killGrace = 2 * time.Second

// Options configures a Runner.
type Options struct {
	// Shell overrides the interpreter; empty selects bash (POSIX) or PowerShell (Windows).
	Shell string
	// Stdout and Stderr receive output live while the command runs. Nil disables streaming.
	Stdout io.Writer
	Stderr io.Writer
	// Stdin is handed to the child process. Nil leaves it unattached.
	Stdin io.Reader
	// MaxCapture caps each buffered stream; zero means domain.MaxCaptureBytes.
	MaxCapture int
	Logger     ports.Logger
}

// Runner runs commands on the host shell.
type Runner struct {
	shell      string
	stdout     io.Writer
	stderr     io.Writer
	stdin      io.Reader
	maxCapture int
	logger     ports.Logger
}

// NewRunner builds a runner, resolving the platform shell once.
func NewRunner(opts Options) *Runner {
	maxCapture := opts.MaxCapture
	if maxCapture <= 0 {
		maxCapture = domain.MaxCaptureBytes
	}
	shell := opts.Shell
	if shell == "" {
		shell = detectShell()
	}
	return &Runner{
		shell:      shell,
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
		stdin:      opts.Stdin,
		maxCapture: maxCapture,
		logger:     opts.Logger,
	}
}

// Shell returns the interpreter commands are run through.
func (r *Runner) Shell() string {
	return r.shell
}

// Run implements ports.CommandRunner.
func (r *Runner) Run(ctx context.Context, command string, timeout time.Duration) (domain.ExecutionOutcome, error) {
	if timeout <= 0 {
		timeout = domain.DefaultCommandTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout := newBoundedBuffer(r.maxCapture)
	stderr := newBoundedBuffer(r.maxCapture)

	c := exec.CommandContext(runCtx, r.shell, shellArgs(r.shell, command)...)
	c.Stdout = tee(r.stdout, stdout)
	c.Stderr = tee(r.stderr, stderr)
	if r.stdin != nil {
		c.Stdin = r.stdin
	}
	configureCommandProcess(c)
	c.Cancel = func() error {
		return terminateCommandProcess(c)
	}
	c.WaitDelay = killGrace

	r.debug("running command", map[string]interface{}{"shell": r.shell, "timeout": timeout.String()})

	start := time.Now()
	err := c.Run()
	duration := time.Since(start)

	outcome := domain.ExecutionOutcome{
		Stdout:    strings.TrimSpace(stdout.String()),
		Stderr:    strings.TrimSpace(stderr.String()),
		Duration:  duration,
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}

	if err == nil {
		return outcome, nil
	}

	execErr := &domain.ExecError{
		Stdout: outcome.Stdout,
		Stderr: outcome.Stderr,
		Err:    err,
	}

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		execErr.Kind = domain.ExecTimeout
		execErr.ExitCode = -1
		execErr.Detail = fmt.Sprintf("Command timed out after %s seconds.", formatSeconds(timeout))
	case isExitError(err) && ctx.Err() == nil:
		code := exitCode(err)
		execErr.Kind = domain.ExecNonZeroExit
		execErr.ExitCode = code
		detail := outcome.Stderr
		if detail == "" {
			detail = err.Error()
		}
		execErr.Detail = fmt.Sprintf("Command failed (exit code %d):\n%s", code, detail)
	default:
		execErr.Kind = domain.ExecUnknown
		execErr.ExitCode = -1
		if ctx.Err() != nil {
			execErr.Err = ctx.Err()
		}
		execErr.Detail = fmt.Sprintf("Command could not be completed: %v", execErr.Err)
	}

	r.debug("command failed", map[string]interface{}{"kind": execErr.Kind, "exit_code": execErr.ExitCode})
	return outcome, execErr
}

func (r *Runner) debug(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, fields)
	}
}

func tee(live io.Writer, capture io.Writer) io.Writer {
	if live == nil {
		return capture
	}
	return io.MultiWriter(live, capture)
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

// detectShell picks bash on POSIX hosts (falling back to $SHELL, then sh)
// and Windows PowerShell elsewhere.
func detectShell() string {
	if runtime.GOOS == "windows" {
		return "powershell.exe"
	}
	if _, err := os.Stat("/bin/bash"); err == nil {
		return "/bin/bash"
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

// shellArgs builds the interpreter argument list for command.
// PowerShell is told to treat every error as terminating.
func shellArgs(shell, command string) []string {
	name := shellBase(shell)
	switch name {
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-NonInteractive", "-Command", "$ErrorActionPreference = 'Stop'; " + command}
	case "cmd":
		return []string{"/C", command}
	default:
		return []string{"-c", command}
	}
}

var _ ports.CommandRunner = (*Runner)(nil)

// shellBase lowercases the interpreter's file name without extension,
// accepting either path separator.
func shellBase(shell string) string {
	base := path.Base(strings.ReplaceAll(shell, `\`, "/"))
	return strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
}
