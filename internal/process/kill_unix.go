//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts the command in its own process group so that
// KillProcessGroup reaches every child it spawns.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; the caller also kills the leader directly.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
