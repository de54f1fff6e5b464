package analysis

import (
	"fmt"
	"testing"
)

func TestAssembleOK(t *testing.T) {
	sel := MomentSelection{
		ChosenTime: 4.2,
		Peaks: []Peak{
			{Time: 4.2, Magnitude: 0.8, Prominence: 0.5},
			{Time: 9.0, Magnitude: 0.6, Prominence: 0.4},
			{Time: 1.0, Magnitude: 0.5, Prominence: 0.3},
		},
	}

	res := Assemble(&sel, nil, 2, 5.0)
	if res.Status != StatusOK {
		t.Errorf("status = %q, want %q", res.Status, StatusOK)
	}
	if res.ChosenTime != 4.2 {
		t.Errorf("chosen time = %v, want 4.2", res.ChosenTime)
	}
	if len(res.RankedPeaks) != 2 {
		t.Errorf("ranked peaks = %d, want capped at 2", len(res.RankedPeaks))
	}
	if res.Reason != "" {
		t.Errorf("unexpected reason %q", res.Reason)
	}
}

func TestAssembleNoPeaksFallback(t *testing.T) {
	res := Assemble(nil, fmt.Errorf("selecting moment: %w", ErrNoPeakFound), 5, 30.0)
	if res.Status != StatusNoPeaksFallback {
		t.Errorf("status = %q, want %q", res.Status, StatusNoPeaksFallback)
	}
	if res.ChosenTime != 30.0 {
		t.Errorf("chosen time = %v, want fallback 30.0", res.ChosenTime)
	}
	if res.Reason == "" {
		t.Error("fallback result must carry a reason")
	}
	if len(res.RankedPeaks) != 0 {
		t.Errorf("ranked peaks = %d, want 0", len(res.RankedPeaks))
	}
}

func TestAssembleError(t *testing.T) {
	res := Assemble(nil, fmt.Errorf("%w: empty sample buffer", ErrInvalidAudio), 5, 30.0)
	if res.Status != StatusError {
		t.Errorf("status = %q, want %q", res.Status, StatusError)
	}
	if res.Reason == "" {
		t.Error("error result must carry a reason")
	}
}
