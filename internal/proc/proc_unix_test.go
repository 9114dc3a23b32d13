//go:build !windows

package proc

import (
	"os"
	"testing"
)

func TestAliveForOwnProcess(t *testing.T) {
	ctl := System()
	if !ctl.Alive(os.Getpid()) {
		t.Fatal("own process must be alive")
	}
}

func TestAliveForInvalidAndUnassignedPIDs(t *testing.T) {
	ctl := System()
	if ctl.Alive(0) {
		t.Fatal("pid 0 must not be alive")
	}
	if ctl.Alive(-1) {
		t.Fatal("negative pid must not be alive")
	}
	// PIDs above the default kernel pid_max are never assigned.
	if ctl.Alive(1 << 26) {
		t.Fatal("unassigned pid reported alive")
	}
}

func TestTerminateUnassignedPIDReportsNoSuchProcess(t *testing.T) {
	ctl := System()
	if got := ctl.Terminate(1 << 26); got != SignalNoSuchProcess {
		t.Fatalf("terminate of unassigned pid: got %q want %q", got, SignalNoSuchProcess)
	}
	if got := ctl.Terminate(0); got != SignalNoSuchProcess {
		t.Fatalf("terminate of pid 0: got %q want %q", got, SignalNoSuchProcess)
	}
}
