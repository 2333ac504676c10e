package mining

import "fmt"

// Phase identifies where a mining attempt is in the pipeline. An attempt
// moves VALIDATING → PROVING → REWARDING → ASSEMBLING → COMMITTED, or
// terminates in FAILED.
type Phase string

// Set of pipeline phases.
const (
	PhaseValidating Phase = "VALIDATING"
	PhaseProving    Phase = "PROVING"
	PhaseRewarding  Phase = "REWARDING"
	PhaseAssembling Phase = "ASSEMBLING"
	PhaseCommitted  Phase = "COMMITTED"
	PhaseFailed     Phase = "FAILED"
)

// =============================================================================

// ValidationError is returned when a video fails the storage, replication
// or transcoding checks. It is recoverable: the caller may retry later or
// pick a different video. No state is corrupted.
type ValidationError struct {
	VideoCID string
	Result   ValidationResult
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("video validation failed for %s: %s", e.VideoCID, e.Result.ErrorMessage)
}

// =============================================================================

// MiningError is returned on an internal inconsistency, like metadata
// vanishing between validation and proof construction. It is fatal for
// the attempt; no block is emitted.
type MiningError struct {
	Phase    Phase
	VideoCID string
	Reason   string
}

// Error implements the error interface.
func (e *MiningError) Error() string {
	return fmt.Sprintf("mining failed at %s for %s: %s", e.Phase, e.VideoCID, e.Reason)
}
