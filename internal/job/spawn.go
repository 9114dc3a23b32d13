package job

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"yt-playlist-downloader/internal/proc"
	"yt-playlist-downloader/internal/statefile"
)

// StartDetached re-invokes this binary as a session-independent process
// with its combined output appended to the log file, and returns the PID
// without waiting for completion.
func StartDetached(spec Spec) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("resolve own executable: %w", err)
	}

	logPath := spec.LogPath
	if logPath == "" {
		return 0, fmt.Errorf("log path is required for a detached launch")
	}
	if err := statefile.Mkdir(filepath.Dir(logPath)); err != nil {
		return 0, err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open log file %s: %w", logPath, err)
	}
	defer func() {
		_ = logFile.Close()
	}()

	devNull, err := os.Open(os.DevNull)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer func() {
		_ = devNull.Close()
	}()

	cmd := exec.Command(exe, spec.Args...)
	cmd.Stdin = devNull
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	proc.ConfigureDetached(cmd)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start detached worker: %w", err)
	}
	pid := cmd.Process.Pid
	// Detach from the handle entirely; the worker outlives this process.
	// A failed release must not surface as a launch failure: the worker is
	// already running and the caller still has to record its PID.
	_ = cmd.Process.Release()
	return pid, nil
}
