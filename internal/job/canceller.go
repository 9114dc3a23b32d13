package job

import (
	"fmt"

	"yt-playlist-downloader/internal/jobstore"
	"yt-playlist-downloader/internal/proc"
)

type Canceller struct {
	Store jobstore.Store
	Proc  proc.Controller
	Sig   proc.Signature
}

func NewCanceller(store jobstore.Store, ctl proc.Controller) Canceller {
	return Canceller{Store: store, Proc: ctl, Sig: WorkerSignature()}
}

// Cancel walks the load -> verify -> signal -> confirm sequence and maps
// every path to a named outcome. Signalling is fire-and-forget: success
// means the OS accepted the signal, not that the worker has exited.
func (c Canceller) Cancel() (Report, error) {
	rec, ok, err := c.Store.Load()
	if err != nil {
		return Report{}, err
	}
	if !ok {
		return Report{Outcome: OutcomeNothingToCancel}, nil
	}

	report := Report{PID: rec.PID, JobID: rec.JobID}

	if !c.Proc.Alive(rec.PID) {
		if err := c.Store.Clear(rec.PID); err != nil {
			return Report{}, err
		}
		report.Outcome = OutcomeStaleCleared
		return report, nil
	}

	switch c.Proc.Identity(rec.PID, c.Sig) {
	case proc.IdentityMismatch:
		// The PID was recycled by an unrelated process: never signal it.
		if err := c.Store.Clear(rec.PID); err != nil {
			return Report{}, err
		}
		report.Outcome = OutcomeStaleCleared
		report.Confidence = ConfidenceIdentity
		return report, nil
	case proc.IdentityConfirmed:
		report.Confidence = ConfidenceIdentity
	default:
		report.Confidence = ConfidenceLivenessOnly
	}

	switch c.Proc.Terminate(rec.PID) {
	case proc.SignalDelivered:
		if err := c.Store.Clear(rec.PID); err != nil {
			return Report{}, err
		}
		report.Outcome = OutcomeTerminated
		return report, nil
	case proc.SignalNoSuchProcess:
		if err := c.Store.Clear(rec.PID); err != nil {
			return Report{}, err
		}
		report.Outcome = OutcomeAlreadyDeadCleared
		return report, nil
	case proc.SignalPermissionDenied:
		report.Outcome = OutcomePermissionDenied
		return report, nil
	default:
		return Report{}, fmt.Errorf("unexpected signal result for pid %d", rec.PID)
	}
}
