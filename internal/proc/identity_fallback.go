//go:build !linux && !windows

package proc

// Without a procfs there is no portable command-line inspection; liveness
// is the only signal available.
func inspectIdentity(pid int, want Signature) IdentityResult {
	return IdentityUnknown
}
