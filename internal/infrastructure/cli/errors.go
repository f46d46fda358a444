package cli

import "fmt"

// ExitError carries a process exit code out of a command without printing anything further.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
