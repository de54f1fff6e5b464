package analysis

import "errors"

// Sentinel errors for the analysis pipeline. All three are recoverable
// at the orchestration layer; the pipeline itself never substitutes a
// default for any of them.
var (
	// ErrInvalidAudio marks a malformed or empty sample buffer.
	ErrInvalidAudio = errors.New("invalid audio")

	// ErrInvalidConfig marks contradictory configuration values.
	ErrInvalidConfig = errors.New("invalid analysis config")

	// ErrNoPeakFound is returned by moment selection when no peak
	// cleared the adaptive threshold.
	ErrNoPeakFound = errors.New("no peak found")
)
