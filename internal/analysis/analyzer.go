// Package analysis implements the audio-peak analysis and key-moment
// selection pipeline: energy profiling, adaptive peak detection,
// moment ranking, and result assembly. It is pure computation over a
// SampleBuffer; decoding and every network-bound collaborator live
// outside this package.
package analysis

import (
	"context"
	"fmt"
)

// Analyzer runs the full pipeline over one sample buffer with a fixed
// configuration. It holds no mutable state, so a single Analyzer is
// safe for concurrent use across pipeline runs.
type Analyzer struct {
	cfg      Config
	strategy Strategy
}

// NewAnalyzer validates cfg and returns an Analyzer using the default
// ByProminence ranking.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	return NewAnalyzerWithStrategy(cfg, nil)
}

// NewAnalyzerWithStrategy validates cfg and returns an Analyzer with a
// custom ranking strategy.
func NewAnalyzerWithStrategy(cfg Config, strategy Strategy) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg, strategy: strategy}, nil
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze runs profile -> detect -> select -> assemble. Detection
// failures are folded into the status-tagged result; the returned
// error is non-nil only for context cancellation, in which case the
// result must be discarded rather than reported as partial.
func (a *Analyzer) Analyze(ctx context.Context, buf SampleBuffer) (PipelineResult, error) {
	fallback := buf.Duration() / 2

	frames, err := a.profile(buf)
	if err != nil {
		return Assemble(nil, err, a.cfg.TopN, fallback), nil
	}
	if err := ctx.Err(); err != nil {
		return PipelineResult{}, err
	}

	peaks, err := DetectPeaks(frames, a.cfg)
	if err != nil {
		return Assemble(nil, err, a.cfg.TopN, fallback), nil
	}
	if err := ctx.Err(); err != nil {
		return PipelineResult{}, err
	}

	sel, err := SelectMoment(peaks, a.strategy)
	if err != nil {
		return Assemble(nil, err, a.cfg.TopN, fallback), nil
	}
	return Assemble(&sel, nil, a.cfg.TopN, fallback), nil
}

func (a *Analyzer) profile(buf SampleBuffer) ([]EnergyFrame, error) {
	switch a.cfg.Profile {
	case ProfileFlux:
		return ComputeFlux(buf, a.cfg.WindowSeconds, a.cfg.HopSeconds)
	case ProfileRMS, "":
		return ComputeEnergy(buf, a.cfg.WindowSeconds, a.cfg.HopSeconds)
	default:
		return nil, fmt.Errorf("%w: unknown profile %q", ErrInvalidConfig, a.cfg.Profile)
	}
}
