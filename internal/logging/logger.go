// Package logging appends timestamped lines to the shared application log,
// the same file the background worker's raw output is redirected to.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"yt-playlist-downloader/internal/statefile"
)

type Logger struct {
	logger *log.Logger
	file   *os.File
}

// Open appends to the log file at path, optionally mirroring every line to
// stderr for interactive runs.
func Open(path string, echoStderr bool) (*Logger, error) {
	if err := statefile.Mkdir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	var w io.Writer = file
	if echoStderr {
		w = io.MultiWriter(file, os.Stderr)
	}
	return &Logger{
		logger: log.New(w, "", log.LstdFlags),
		file:   file,
	}, nil
}

func (l *Logger) Infof(format string, args ...any) {
	l.logger.Printf("[INFO] "+format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.logger.Printf("[WARNING] "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logger.Printf("[ERROR] "+format, args...)
}

// Writer exposes the raw file handle for streaming subprocess output into
// the same chronological record.
func (l *Logger) Writer() io.Writer {
	return l.file
}

func (l *Logger) Close() error {
	return l.file.Close()
}
