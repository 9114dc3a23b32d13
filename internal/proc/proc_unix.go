//go:build !windows

package proc

import (
	"errors"
	"os/exec"
	"syscall"
)

type systemController struct{}

// Alive uses the zero-effect signal probe. EPERM means the process exists
// but belongs to another principal: alive, with reduced confidence.
func (systemController) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}

func (systemController) Identity(pid int, want Signature) IdentityResult {
	return inspectIdentity(pid, want)
}

// Terminate signals the whole process group so children of the download
// tool die with it. Falls back to the direct PID when the target is not a
// group leader.
func (systemController) Terminate(pid int) SignalResult {
	if pid <= 0 {
		return SignalNoSuchProcess
	}
	err := syscall.Kill(-pid, syscall.SIGTERM)
	if err != nil && (errors.Is(err, syscall.ESRCH) || errors.Is(err, syscall.EPERM)) {
		err = syscall.Kill(pid, syscall.SIGTERM)
	}
	return classifySignalError(err)
}

func classifySignalError(err error) SignalResult {
	switch {
	case err == nil:
		return SignalDelivered
	case errors.Is(err, syscall.ESRCH):
		return SignalNoSuchProcess
	case errors.Is(err, syscall.EPERM):
		return SignalPermissionDenied
	default:
		// Anything else from kill(2) on a valid PID is effectively
		// undeliverable; treat it as permission-class so the record is
		// preserved rather than cleared under uncertainty.
		return SignalPermissionDenied
	}
}

// ConfigureDetached places the child in a new session so it survives the
// parent terminal and can be signalled as a group.
func ConfigureDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
