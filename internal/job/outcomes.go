package job

// Outcome names every terminal state of a cancellation attempt so the CLI
// can print an accurate message instead of collapsing them into a boolean.
type Outcome string

const (
	// OutcomeNothingToCancel: no record exists; no signal facility touched.
	OutcomeNothingToCancel Outcome = "nothing_to_cancel"
	// OutcomeStaleCleared: the recorded PID no longer refers to the tracked
	// job; the record was self-healed and no signal was delivered.
	OutcomeStaleCleared Outcome = "stale_cleared"
	// OutcomeTerminated: the termination signal was accepted for the
	// tracked job and the record was cleared.
	OutcomeTerminated Outcome = "terminated"
	// OutcomeAlreadyDeadCleared: the process vanished between verification
	// and signalling; goal already achieved, record cleared.
	OutcomeAlreadyDeadCleared Outcome = "already_dead_cleared"
	// OutcomePermissionDenied: the signal could not be delivered; the job's
	// true state is unknown so the record is preserved.
	OutcomePermissionDenied Outcome = "permission_denied"
)

// Confidence records which verification level backed an outcome.
type Confidence string

const (
	// ConfidenceIdentity: the process command line was inspected and
	// matched the worker invocation.
	ConfidenceIdentity Confidence = "identity"
	// ConfidenceLivenessOnly: identity inspection was unavailable; a reused
	// PID belonging to an unrelated process could in principle have been
	// targeted. Surfaced so callers can qualify their messaging.
	ConfidenceLivenessOnly Confidence = "liveness_only"
)

// Report is the result of a cancellation attempt.
type Report struct {
	Outcome    Outcome    `json:"outcome"`
	PID        int        `json:"pid,omitempty"`
	JobID      string     `json:"job_id,omitempty"`
	Confidence Confidence `json:"confidence,omitempty"`
}
