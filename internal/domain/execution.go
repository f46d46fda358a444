package domain

import (
	"fmt"
	"time"
)

// ExecutionOutcome is the captured result of a successful command run.
type ExecutionOutcome struct {
	Stdout    string
	Stderr    string
	Duration  time.Duration
	Truncated bool
}

// ExecErrorKind categorizes subprocess failures.
type ExecErrorKind string

const (
	ExecTimeout     ExecErrorKind = "timeout"
	ExecNonZeroExit ExecErrorKind = "non_zero_exit"
	ExecUnknown     ExecErrorKind = "unknown"
)

// ExecError is the typed failure returned by the command runner.
type ExecError struct {
	Kind     ExecErrorKind
	ExitCode int
	Detail   string
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("command failed (%s)", e.Kind)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether the command was killed by the runner's deadline.
func (e *ExecError) IsTimeout() bool {
	return e != nil && e.Kind == ExecTimeout
}
