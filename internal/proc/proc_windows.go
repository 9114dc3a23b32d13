//go:build windows

package proc

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

type systemController struct{}

func (systemController) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	defer func() {
		_ = p.Release()
	}()
	err = p.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	if errors.Is(err, os.ErrProcessDone) {
		return false
	}
	// Access denied still means a live process.
	return errors.Is(err, os.ErrPermission)
}

// Command-line inspection is not available here; callers fall back to
// liveness-only verification.
func (systemController) Identity(pid int, want Signature) IdentityResult {
	return IdentityUnknown
}

func (systemController) Terminate(pid int) SignalResult {
	if pid <= 0 {
		return SignalNoSuchProcess
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return SignalNoSuchProcess
	}
	defer func() {
		_ = p.Release()
	}()
	err = p.Kill()
	switch {
	case err == nil:
		return SignalDelivered
	case errors.Is(err, os.ErrProcessDone):
		return SignalNoSuchProcess
	case errors.Is(err, os.ErrPermission):
		return SignalPermissionDenied
	default:
		return SignalPermissionDenied
	}
}

// ConfigureDetached gives the child its own process group so console
// control events do not propagate from the parent.
func ConfigureDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}
