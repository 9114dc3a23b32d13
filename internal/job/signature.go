package job

import (
	"os"
	"path/filepath"

	"yt-playlist-downloader/internal/proc"
)

// WorkerSubcommand is the subcommand the launcher re-invokes this binary
// with; it doubles as the identity token probed in foreign command lines.
const WorkerSubcommand = "worker"

// WorkerSignature is the invocation signature a tracked background job is
// verified against: this binary's name plus the worker subcommand.
func WorkerSignature() proc.Signature {
	base := "yt-playlist-downloader"
	if exe, err := os.Executable(); err == nil {
		base = filepath.Base(exe)
	}
	return proc.Signature{Tokens: []string{base, WorkerSubcommand}}
}
