// Package proc probes and signals operating-system processes. The job
// lifecycle logic depends only on the Controller interface so it can be
// tested without spawning real processes.
package proc

import "strings"

// IdentityResult is the confidence of a command-line identity check.
type IdentityResult string

const (
	// IdentityConfirmed: the process command line matches the expected
	// worker invocation.
	IdentityConfirmed IdentityResult = "confirmed"
	// IdentityMismatch: the command line was inspected and does not match;
	// the PID has been recycled by an unrelated process.
	IdentityMismatch IdentityResult = "mismatch"
	// IdentityUnknown: the platform offers no command-line inspection (or
	// the process is not inspectable); only liveness is known. Callers must
	// surface this weaker confidence rather than present it as certainty.
	IdentityUnknown IdentityResult = "unknown"
)

// SignalResult is the complete outcome contract for termination signals.
type SignalResult string

const (
	SignalDelivered        SignalResult = "delivered"
	SignalNoSuchProcess    SignalResult = "no_such_process"
	SignalPermissionDenied SignalResult = "permission_denied"
)

// Signature describes the expected worker invocation: every token must
// appear somewhere in the target's command line for a confirmed match.
type Signature struct {
	Tokens []string
}

func (s Signature) matches(argv []string) bool {
	if len(s.Tokens) == 0 {
		return false
	}
	joined := strings.Join(argv, "\x00")
	for _, tok := range s.Tokens {
		if tok == "" {
			continue
		}
		if !strings.Contains(joined, tok) {
			return false
		}
	}
	return true
}

// Controller is the injectable process-control capability.
type Controller interface {
	// Alive reports whether a process with the PID currently exists. A
	// process that exists but is owned by another principal still counts
	// as alive (reduced confidence, see Identity).
	Alive(pid int) bool

	// Identity inspects the process command line against the expected
	// signature, degrading to IdentityUnknown where inspection is
	// unavailable.
	Identity(pid int, want Signature) IdentityResult

	// Terminate delivers a termination signal to the process and, where
	// the platform groups children, to its whole process group.
	Terminate(pid int) SignalResult
}

// System returns the real operating-system controller.
func System() Controller {
	return systemController{}
}
