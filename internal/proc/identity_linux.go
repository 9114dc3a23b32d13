//go:build linux

package proc

import (
	"bytes"
	"fmt"
	"os"
)

// inspectIdentity reads /proc/<pid>/cmdline. An unreadable entry for a
// live process (privilege boundary) degrades to IdentityUnknown.
func inspectIdentity(pid int, want Signature) IdentityResult {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
	if err != nil {
		return IdentityUnknown
	}
	argv := splitCmdline(data)
	if len(argv) == 0 {
		// Kernel threads and zombies expose an empty cmdline.
		return IdentityUnknown
	}
	if want.matches(argv) {
		return IdentityConfirmed
	}
	return IdentityMismatch
}

func splitCmdline(data []byte) []string {
	parts := bytes.Split(bytes.TrimRight(data, "\x00"), []byte{0})
	argv := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		argv = append(argv, string(p))
	}
	return argv
}
