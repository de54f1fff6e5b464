package analysis

import "fmt"

// Energy profile modes.
const (
	ProfileRMS  = "rms"
	ProfileFlux = "flux"
)

// Config holds the tunable parameters of the analysis pipeline. The
// defaults were chosen against spoken-word and music uploads; treat
// them as starting points, not constants.
type Config struct {
	// WindowSeconds is the duration of one energy window.
	WindowSeconds float64

	// HopSeconds is the step between window starts.
	HopSeconds float64

	// ThresholdK scales the stddev term of the adaptive threshold
	// (mean + K*stddev).
	ThresholdK float64

	// MinSeparationSeconds is the minimum distance between two
	// accepted peaks.
	MinSeparationSeconds float64

	// TopN caps the ranked peak list in the assembled result.
	TopN int

	// Profile selects the energy measure: ProfileRMS or ProfileFlux.
	Profile string
}

// DefaultConfig returns the stock analysis parameters.
func DefaultConfig() Config {
	return Config{
		WindowSeconds:        0.2,
		HopSeconds:           0.1,
		ThresholdK:           1.25,
		MinSeparationSeconds: 1.5,
		TopN:                 5,
		Profile:              ProfileRMS,
	}
}

// Validate reports ErrInvalidConfig for contradictory parameter
// combinations. A MinSeparationSeconds below the hop size would make
// the separation rule meaningless, so it is rejected rather than
// silently clamped.
func (c Config) Validate() error {
	if c.WindowSeconds <= 0 {
		return fmt.Errorf("%w: window %v must be positive", ErrInvalidConfig, c.WindowSeconds)
	}
	if c.HopSeconds <= 0 {
		return fmt.Errorf("%w: hop %v must be positive", ErrInvalidConfig, c.HopSeconds)
	}
	if c.HopSeconds > c.WindowSeconds {
		return fmt.Errorf("%w: hop %v exceeds window %v", ErrInvalidConfig, c.HopSeconds, c.WindowSeconds)
	}
	if c.ThresholdK < 0 {
		return fmt.Errorf("%w: threshold multiplier %v must not be negative", ErrInvalidConfig, c.ThresholdK)
	}
	if c.MinSeparationSeconds < c.HopSeconds {
		return fmt.Errorf("%w: min separation %v is below hop %v", ErrInvalidConfig, c.MinSeparationSeconds, c.HopSeconds)
	}
	if c.TopN < 1 {
		return fmt.Errorf("%w: topN %d must be at least 1", ErrInvalidConfig, c.TopN)
	}
	switch c.Profile {
	case ProfileRMS, ProfileFlux:
	default:
		return fmt.Errorf("%w: unknown profile %q", ErrInvalidConfig, c.Profile)
	}
	return nil
}
