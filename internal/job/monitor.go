package job

import (
	"yt-playlist-downloader/internal/jobstore"
	"yt-playlist-downloader/internal/proc"
)

// State of the tracked background job as seen by a status probe.
type State string

const (
	StateNone         State = "none"
	StateRunning      State = "running"
	StateStaleCleared State = "stale_cleared"
)

type StatusReport struct {
	State      State      `json:"state"`
	PID        int        `json:"pid,omitempty"`
	JobID      string     `json:"job_id,omitempty"`
	StartedAt  string     `json:"started_at,omitempty"`
	Playlist   string     `json:"playlist_url,omitempty"`
	LogPath    string     `json:"log_path,omitempty"`
	Confidence Confidence `json:"confidence,omitempty"`
}

type Monitor struct {
	Store jobstore.Store
	Proc  proc.Controller
	Sig   proc.Signature
}

func NewMonitor(store jobstore.Store, ctl proc.Controller) Monitor {
	return Monitor{Store: store, Proc: ctl, Sig: WorkerSignature()}
}

// Status probes the tracked record, self-healing it when the PID no longer
// refers to the job.
func (m Monitor) Status() (StatusReport, error) {
	rec, ok, err := m.Store.Load()
	if err != nil {
		return StatusReport{}, err
	}
	if !ok {
		return StatusReport{State: StateNone}, nil
	}

	report := StatusReport{
		PID:       rec.PID,
		JobID:     rec.JobID,
		StartedAt: rec.StartedAt,
		Playlist:  rec.PlaylistURL,
		LogPath:   rec.LogPath,
	}

	if !m.Proc.Alive(rec.PID) {
		if err := m.Store.Clear(rec.PID); err != nil {
			return StatusReport{}, err
		}
		report.State = StateStaleCleared
		return report, nil
	}

	switch m.Proc.Identity(rec.PID, m.Sig) {
	case proc.IdentityMismatch:
		if err := m.Store.Clear(rec.PID); err != nil {
			return StatusReport{}, err
		}
		report.State = StateStaleCleared
		report.Confidence = ConfidenceIdentity
		return report, nil
	case proc.IdentityConfirmed:
		report.Confidence = ConfidenceIdentity
	default:
		report.Confidence = ConfidenceLivenessOnly
	}
	report.State = StateRunning
	return report, nil
}
