//go:build windows

package executor

import (
	"os/exec"
	"strconv"
)

func configureCommandProcess(cmd *exec.Cmd) {}

// terminateCommandProcess kills the process tree through taskkill, falling
// back to killing the shell alone.
func terminateCommandProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	kill := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(cmd.Process.Pid))
	if err := kill.Run(); err == nil {
		return nil
	}
	return cmd.Process.Kill()
}
