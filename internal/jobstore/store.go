// Package jobstore persists the single tracked background job record.
package jobstore

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"yt-playlist-downloader/internal/statefile"

	"github.com/google/uuid"
)

const DefaultRecordPath = "state/job.json"

// Record is the singleton background-job record. Only PID participates in
// the liveness probe and the clear guard; the rest is informational.
type Record struct {
	JobID       string `json:"job_id"`
	PID         int    `json:"pid"`
	StartedAt   string `json:"started_at"`
	PlaylistURL string `json:"playlist_url,omitempty"`
	LogPath     string `json:"log_path,omitempty"`
}

type Store struct {
	path string
}

func New(path string) Store {
	p := strings.TrimSpace(path)
	if p == "" {
		p = DefaultRecordPath
	}
	return Store{path: p}
}

func (s Store) Path() string {
	return s.path
}

// NewRecord mints a record for a freshly spawned worker process.
func NewRecord(pid int, playlistURL, logPath string) (Record, error) {
	if pid <= 0 {
		return Record{}, fmt.Errorf("pid must be positive, got %d", pid)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Record{}, fmt.Errorf("mint job id: %w", err)
	}
	return Record{
		JobID:       id.String(),
		PID:         pid,
		StartedAt:   time.Now().UTC().Format(time.RFC3339),
		PlaylistURL: strings.TrimSpace(playlistURL),
		LogPath:     strings.TrimSpace(logPath),
	}, nil
}

func (s Store) Save(rec Record) error {
	if rec.PID <= 0 {
		return fmt.Errorf("refusing to save job record with pid %d", rec.PID)
	}
	return statefile.WriteJSON(s.path, rec)
}

// Load returns the tracked record. A missing or malformed file is reported
// as absence, not an error, so a corrupted record self-heals on the next
// save instead of wedging every command.
func (s Store) Load() (Record, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("read job record %s: %w", s.path, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, nil
	}
	if rec.PID <= 0 {
		return Record{}, false, nil
	}
	return rec, true, nil
}

// Clear removes the record only while it still names expectedPID. A record
// written by a newer job between load and clear is left untouched.
func (s Store) Clear(expectedPID int) error {
	rec, ok, err := s.Load()
	if err != nil {
		return err
	}
	if !ok || rec.PID != expectedPID {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear job record %s: %w", s.path, err)
	}
	return nil
}
