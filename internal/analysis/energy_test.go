package analysis

import (
	"errors"
	"math"
	"testing"
)

// constantBuffer returns a buffer of the given duration filled with a
// single amplitude.
func constantBuffer(t *testing.T, durationSec float64, rate int, amp float64) SampleBuffer {
	t.Helper()
	n := int(durationSec * float64(rate))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amp
	}
	return SampleBuffer{Samples: samples, SampleRate: rate}
}

// burst overwrites [at, at+durationSec) with the given amplitude.
func burst(t *testing.T, buf SampleBuffer, at, durationSec, amp float64) {
	t.Helper()
	start := int(at * float64(buf.SampleRate))
	end := start + int(durationSec*float64(buf.SampleRate))
	if start < 0 || end > len(buf.Samples) {
		t.Fatalf("burst [%v, %v) outside buffer", at, at+durationSec)
	}
	for i := start; i < end; i++ {
		buf.Samples[i] = amp
	}
}

func TestComputeEnergyFrameCount(t *testing.T) {
	tests := []struct {
		name        string
		durationSec float64
		rate        int
		window, hop float64
		want        int
	}{
		{"ten seconds 16k", 10, 16000, 0.2, 0.1, 99},
		{"exact windows", 1, 8000, 0.25, 0.25, 4},
		{"trailing partial", 1.0125, 8000, 0.25, 0.25, 5},
		{"shorter than window", 0.0625, 8000, 0.25, 0.25, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := constantBuffer(t, tt.durationSec, tt.rate, 0.1)
			frames, err := ComputeEnergy(buf, tt.window, tt.hop)
			if err != nil {
				t.Fatalf("ComputeEnergy failed: %v", err)
			}
			if len(frames) != tt.want {
				t.Errorf("got %d frames, want %d", len(frames), tt.want)
			}
		})
	}
}

func TestComputeEnergyInvariants(t *testing.T) {
	buf := constantBuffer(t, 5, 16000, 0.05)
	burst(t, buf, 2.0, 0.1, 0.8)

	frames, err := ComputeEnergy(buf, 0.2, 0.1)
	if err != nil {
		t.Fatalf("ComputeEnergy failed: %v", err)
	}

	for i, f := range frames {
		if f.Energy < 0 {
			t.Errorf("frame %d has negative energy %v", i, f.Energy)
		}
		if i > 0 && f.StartTime <= frames[i-1].StartTime {
			t.Errorf("frame %d start %v not after frame %d start %v",
				i, f.StartTime, i-1, frames[i-1].StartTime)
		}
	}
}

func TestComputeEnergyConstantSignal(t *testing.T) {
	buf := constantBuffer(t, 2, 8000, 0.25)
	frames, err := ComputeEnergy(buf, 0.25, 0.25)
	if err != nil {
		t.Fatalf("ComputeEnergy failed: %v", err)
	}
	for i, f := range frames {
		if math.Abs(f.Energy-0.25) > 1e-12 {
			t.Errorf("frame %d energy = %v, want 0.25", i, f.Energy)
		}
	}
}

func TestComputeEnergyTruncatesTrailingWindow(t *testing.T) {
	// 1.0125s at 8kHz: the last window holds only 100 samples. With
	// truncation its RMS equals the constant amplitude; zero-padding
	// would have dragged it down.
	buf := constantBuffer(t, 1.0125, 8000, 0.5)
	frames, err := ComputeEnergy(buf, 0.25, 0.25)
	if err != nil {
		t.Fatalf("ComputeEnergy failed: %v", err)
	}
	last := frames[len(frames)-1]
	if math.Abs(last.Energy-0.5) > 1e-12 {
		t.Errorf("truncated frame energy = %v, want 0.5", last.Energy)
	}
}

func TestComputeEnergyInvalidAudio(t *testing.T) {
	if _, err := ComputeEnergy(SampleBuffer{SampleRate: 16000}, 0.2, 0.1); !errors.Is(err, ErrInvalidAudio) {
		t.Errorf("empty buffer: got %v, want ErrInvalidAudio", err)
	}
	if _, err := ComputeEnergy(SampleBuffer{Samples: []float64{0.1}, SampleRate: 0}, 0.2, 0.1); !errors.Is(err, ErrInvalidAudio) {
		t.Errorf("zero sample rate: got %v, want ErrInvalidAudio", err)
	}
}

func TestComputeEnergyHopExceedsWindow(t *testing.T) {
	// A hop wider than the window would place frame starts past the
	// buffer end; the contradiction must surface as a config error,
	// not a crash.
	buf := SampleBuffer{Samples: make([]float64, 10), SampleRate: 1}
	if _, err := ComputeEnergy(buf, 1, 8); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("got %v, want ErrInvalidConfig", err)
	}
	if _, err := ComputeFlux(buf, 1, 8); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("flux: got %v, want ErrInvalidConfig", err)
	}
}

func TestComputeFluxRegistersOnset(t *testing.T) {
	buf := constantBuffer(t, 4, 8000, 0.0)
	// Tone burst: silence then a 440 Hz second then silence again.
	for i := 8000; i < 16000; i++ {
		buf.Samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/8000)
	}

	frames, err := ComputeFlux(buf, 0.2, 0.1)
	if err != nil {
		t.Fatalf("ComputeFlux failed: %v", err)
	}

	maxIdx := 0
	for i, f := range frames {
		if f.Energy < 0 {
			t.Errorf("frame %d has negative flux %v", i, f.Energy)
		}
		if f.Energy > frames[maxIdx].Energy {
			maxIdx = i
		}
	}
	// The strongest flux must sit at the tone onset around t=1.0.
	if at := frames[maxIdx].StartTime; math.Abs(at-1.0) > 0.25 {
		t.Errorf("max flux at %v, want near 1.0", at)
	}
}

func TestComputeFluxTooShort(t *testing.T) {
	buf := constantBuffer(t, 0.05, 8000, 0.1)
	if _, err := ComputeFlux(buf, 0.2, 0.1); !errors.Is(err, ErrInvalidAudio) {
		t.Errorf("got %v, want ErrInvalidAudio", err)
	}
}
