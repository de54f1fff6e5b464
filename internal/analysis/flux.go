package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// ComputeFlux profiles the buffer with spectral flux instead of RMS:
// each frame's energy is the sum of positive magnitude increases over
// the previous frame's spectrum. Onsets (drum hits, shouts, door
// slams) register strongly even when the overall level barely moves.
// The first frame has zero flux since it has no predecessor.
//
// Unlike the RMS profile, flux needs full windows; buffers shorter
// than one window are rejected as invalid audio.
func ComputeFlux(buf SampleBuffer, windowSeconds, hopSeconds float64) ([]EnergyFrame, error) {
	if len(buf.Samples) == 0 {
		return nil, fmt.Errorf("%w: empty sample buffer", ErrInvalidAudio)
	}
	if buf.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidAudio, buf.SampleRate)
	}
	if windowSeconds <= 0 || hopSeconds <= 0 {
		return nil, fmt.Errorf("%w: window %v hop %v", ErrInvalidConfig, windowSeconds, hopSeconds)
	}
	if hopSeconds > windowSeconds {
		return nil, fmt.Errorf("%w: hop %v exceeds window %v", ErrInvalidConfig, hopSeconds, windowSeconds)
	}

	rate := float64(buf.SampleRate)
	win := int(windowSeconds * rate)
	if win < 2 {
		win = 2
	}
	hop := int(hopSeconds * rate)
	if hop < 1 {
		hop = 1
	}
	if len(buf.Samples) < win {
		return nil, fmt.Errorf("%w: buffer shorter than one analysis window", ErrInvalidAudio)
	}

	window := hamming(win)
	frame := make([]float64, win)
	var prev []float64

	frames := make([]EnergyFrame, 0, (len(buf.Samples)-win)/hop+1)
	for start := 0; start+win <= len(buf.Samples); start += hop {
		copy(frame, buf.Samples[start:start+win])
		for i := range frame {
			frame[i] *= window[i]
		}

		mag := magnitudeSpectrum(fft.FFTReal(frame))

		var flux float64
		if prev != nil {
			for k := range mag {
				if d := mag[k] - prev[k]; d > 0 {
					flux += d
				}
			}
		}
		prev = append(prev[:0], mag...)

		frames = append(frames, EnergyFrame{
			StartTime: float64(start) / rate,
			Energy:    flux,
		})
	}
	return frames, nil
}

// hamming returns a Hamming window of length n.
func hamming(n int) []float64 {
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// magnitudeSpectrum reduces a complex spectrum to positive-frequency
// magnitudes.
func magnitudeSpectrum(spectrum []complex128) []float64 {
	half := len(spectrum) / 2
	mag := make([]float64, half)
	for i := 0; i < half; i++ {
		mag[i] = cmplx.Abs(spectrum[i])
	}
	return mag
}
