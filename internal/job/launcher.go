// Package job tracks at most one detached background download: launching
// it, probing whether the recorded PID still belongs to it, and cancelling
// the right process tree.
package job

import (
	"fmt"

	"yt-playlist-downloader/internal/jobstore"
	"yt-playlist-downloader/internal/proc"
)

// Spec describes the detached worker invocation to spawn.
type Spec struct {
	// Args is the full argument vector after the executable, starting with
	// the worker subcommand.
	Args []string
	// LogPath receives the worker's combined stdout+stderr, append mode.
	LogPath string
	// PlaylistURL is recorded for status display only.
	PlaylistURL string
}

// SpawnFunc starts a detached process and returns its PID without waiting.
type SpawnFunc func(spec Spec) (int, error)

// AlreadyRunningError reports a refused second launch.
type AlreadyRunningError struct {
	PID int
}

func (e AlreadyRunningError) Error() string {
	return fmt.Sprintf("a background download is already running (pid %d)", e.PID)
}

type Launcher struct {
	Store jobstore.Store
	Proc  proc.Controller
	Sig   proc.Signature
	Spawn SpawnFunc
}

func NewLauncher(store jobstore.Store, ctl proc.Controller) Launcher {
	return Launcher{
		Store: store,
		Proc:  ctl,
		Sig:   WorkerSignature(),
		Spawn: StartDetached,
	}
}

// Launch refuses to start a second job while the tracked one is alive and
// identity-compatible, self-heals a stale record, spawns the worker, and
// persists its PID before returning.
func (l Launcher) Launch(spec Spec) (jobstore.Record, error) {
	if len(spec.Args) == 0 {
		return jobstore.Record{}, fmt.Errorf("launch spec has no arguments")
	}

	prev, ok, err := l.Store.Load()
	if err != nil {
		return jobstore.Record{}, err
	}
	if ok {
		if l.Proc.Alive(prev.PID) && l.Proc.Identity(prev.PID, l.Sig) != proc.IdentityMismatch {
			return jobstore.Record{}, AlreadyRunningError{PID: prev.PID}
		}
		// Dead or recycled PID: the record is stale, heal it.
		if err := l.Store.Clear(prev.PID); err != nil {
			return jobstore.Record{}, err
		}
	}

	pid, err := l.Spawn(spec)
	if err != nil {
		return jobstore.Record{}, fmt.Errorf("spawn background worker: %w", err)
	}

	rec, err := jobstore.NewRecord(pid, spec.PlaylistURL, spec.LogPath)
	if err != nil {
		return jobstore.Record{}, err
	}
	if err := l.Store.Save(rec); err != nil {
		return jobstore.Record{}, fmt.Errorf("record background job pid %d: %w", pid, err)
	}
	return rec, nil
}
