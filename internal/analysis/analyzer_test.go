package analysis

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestAnalyzerSingleSpike(t *testing.T) {
	cfg := DefaultConfig()
	a, err := NewAnalyzer(cfg)
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}

	buf := constantBuffer(t, 10, 16000, 0.05)
	burst(t, buf, 5.0, 0.05, 0.5)

	res, err := a.Analyze(context.Background(), buf)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Status != StatusOK {
		t.Fatalf("status = %q (%s), want ok", res.Status, res.Reason)
	}
	if len(res.RankedPeaks) != 1 {
		t.Fatalf("got %d ranked peaks, want 1", len(res.RankedPeaks))
	}
	if d := math.Abs(res.ChosenTime - 5.0); d > cfg.HopSeconds+1e-9 {
		t.Errorf("chosen time %v, want within one hop of 5.0", res.ChosenTime)
	}
	if res.ChosenTime != res.RankedPeaks[0].Time {
		t.Errorf("chosen time %v != top peak time %v", res.ChosenTime, res.RankedPeaks[0].Time)
	}
}

func TestAnalyzerTwoSpikesTopOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopN = 1
	a, err := NewAnalyzer(cfg)
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}

	buf := constantBuffer(t, 10, 16000, 0.05)
	burst(t, buf, 2.0, 0.05, 0.5)
	burst(t, buf, 8.0, 0.05, 0.5)

	res, err := a.Analyze(context.Background(), buf)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Status != StatusOK {
		t.Fatalf("status = %q (%s), want ok", res.Status, res.Reason)
	}
	if len(res.RankedPeaks) != 1 {
		t.Fatalf("got %d ranked peaks, want exactly 1 with TopN=1", len(res.RankedPeaks))
	}
	near := func(a, b float64) bool { return math.Abs(a-b) <= cfg.HopSeconds+1e-9 }
	if !near(res.ChosenTime, 2.0) && !near(res.ChosenTime, 8.0) {
		t.Errorf("chosen time %v matches neither spike", res.ChosenTime)
	}
}

func TestAnalyzerDeterminism(t *testing.T) {
	a, err := NewAnalyzer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}

	buf := constantBuffer(t, 12, 16000, 0.05)
	burst(t, buf, 3.0, 0.05, 0.4)
	burst(t, buf, 9.0, 0.05, 0.7)

	first, err := a.Analyze(context.Background(), buf)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := a.Analyze(context.Background(), buf)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("pipeline not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzerSilenceFallsBack(t *testing.T) {
	a, err := NewAnalyzer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}

	buf := constantBuffer(t, 10, 16000, 0)
	res, err := a.Analyze(context.Background(), buf)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Status != StatusNoPeaksFallback {
		t.Fatalf("status = %q, want %q", res.Status, StatusNoPeaksFallback)
	}
	if res.ChosenTime != 5.0 {
		t.Errorf("fallback time = %v, want midpoint 5.0", res.ChosenTime)
	}
}

func TestAnalyzerEmptyBuffer(t *testing.T) {
	a, err := NewAnalyzer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}

	res, err := a.Analyze(context.Background(), SampleBuffer{SampleRate: 16000})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Status != StatusError {
		t.Errorf("status = %q, want %q", res.Status, StatusError)
	}
	if res.Reason == "" {
		t.Error("error result must carry a reason")
	}
}

func TestAnalyzerCancelledContext(t *testing.T) {
	a, err := NewAnalyzer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := constantBuffer(t, 10, 16000, 0.05)
	if _, err := a.Analyze(ctx, buf); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestNewAnalyzerRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopN = 0
	if _, err := NewAnalyzer(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("got %v, want ErrInvalidConfig", err)
	}
}
