package analysis

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the frame count above which window computation
// is spread across goroutines. Windows are independent, so the result
// is bit-identical to the serial path.
const parallelThreshold = 4096

// ComputeEnergy slides a window of windowSeconds across the buffer
// with step hopSeconds and reduces each window to its RMS amplitude.
// The trailing window is truncated at the buffer edge rather than
// zero-padded, which keeps the final frame from reading artificially
// low. Frame count follows ceil((N-W)/H)+1 for a buffer of N samples.
func ComputeEnergy(buf SampleBuffer, windowSeconds, hopSeconds float64) ([]EnergyFrame, error) {
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
	if win < 1 {
		win = 1
	}
	hop := int(hopSeconds * rate)
	if hop < 1 {
		hop = 1
	}

	n := len(buf.Samples)
	var nFrames int
	if n <= win {
		nFrames = 1
	} else {
		nFrames = (n-win+hop-1)/hop + 1
	}

	frames := make([]EnergyFrame, nFrames)
	fill := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			start := i * hop
			end := start + win
			if end > n {
				end = n
			}
			frames[i] = EnergyFrame{
				StartTime: float64(start) / rate,
				Energy:    rms(buf.Samples[start:end]),
			}
		}
	}

	if nFrames < parallelThreshold {
		fill(0, nFrames)
		return frames, nil
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (nFrames + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < nFrames; lo += chunk {
		hi := lo + chunk
		if hi > nFrames {
			hi = nFrames
		}
		g.Go(func() error {
			fill(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

// rms computes the root-mean-square of a window with double-precision
// accumulation.
func rms(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, s := range window {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(window)))
}
