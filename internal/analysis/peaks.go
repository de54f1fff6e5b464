package analysis

import (
	"fmt"
	"math"
	"sort"
)

// DetectPeaks finds local maxima in the energy series that clear an
// adaptive threshold of mean + ThresholdK*stddev, then enforces the
// minimum separation between accepted peaks. Quiet or uniform audio
// produces an empty slice, not an error; the caller decides the
// fallback policy.
//
// The returned peaks are in time order and no two of them are closer
// than MinSeparationSeconds.
func DetectPeaks(frames []EnergyFrame, cfg Config) ([]Peak, error) {
	if cfg.MinSeparationSeconds < cfg.HopSeconds {
		return nil, fmt.Errorf("%w: min separation %v is below hop %v",
			ErrInvalidConfig, cfg.MinSeparationSeconds, cfg.HopSeconds)
	}
	if len(frames) == 0 {
		return nil, nil
	}

	threshold := adaptiveThreshold(frames, cfg.ThresholdK)

	// Candidate peaks: above threshold and a local maximum. On a
	// plateau the leftmost frame wins, matching the earlier-timestamp
	// tie-break of the separation rule.
	var candidates []int
	for i := range frames {
		if frames[i].Energy <= threshold {
			continue
		}
		if isLocalMax(frames, i) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	accepted := enforceSeparation(frames, candidates, cfg.MinSeparationSeconds)

	peaks := make([]Peak, 0, len(accepted))
	for _, i := range accepted {
		peaks = append(peaks, Peak{
			Time:       frames[i].StartTime,
			Magnitude:  frames[i].Energy,
			Prominence: prominence(frames, i, threshold),
		})
	}
	sort.Slice(peaks, func(a, b int) bool { return peaks[a].Time < peaks[b].Time })
	return peaks, nil
}

// adaptiveThreshold computes mean + k*stddev over the full series in
// two passes, both with double accumulation.
func adaptiveThreshold(frames []EnergyFrame, k float64) float64 {
	var sum float64
	for _, f := range frames {
		sum += f.Energy
	}
	mean := sum / float64(len(frames))

	var varSum float64
	for _, f := range frames {
		d := f.Energy - mean
		varSum += d * d
	}
	stddev := math.Sqrt(varSum / float64(len(frames)))

	return mean + k*stddev
}

// isLocalMax reports whether frame i is strictly greater than its left
// neighbor and at least as large as its right neighbor, so a plateau
// yields exactly one candidate at its left edge.
func isLocalMax(frames []EnergyFrame, i int) bool {
	if i > 0 && frames[i].Energy <= frames[i-1].Energy {
		return false
	}
	if i < len(frames)-1 && frames[i].Energy < frames[i+1].Energy {
		return false
	}
	return true
}

// enforceSeparation keeps the strongest candidate within each
// MinSeparationSeconds neighborhood. Candidates are considered in
// descending energy order with earlier timestamps breaking ties, so
// when two candidates collide the louder one survives and an exact
// tie goes to the earlier one.
func enforceSeparation(frames []EnergyFrame, candidates []int, minSeparation float64) []int {
	order := make([]int, len(candidates))
	copy(order, candidates)
	sort.Slice(order, func(a, b int) bool {
		ea, eb := frames[order[a]].Energy, frames[order[b]].Energy
		if ea != eb {
			return ea > eb
		}
		return frames[order[a]].StartTime < frames[order[b]].StartTime
	})

	var accepted []int
	for _, idx := range order {
		ok := true
		for _, kept := range accepted {
			if math.Abs(frames[idx].StartTime-frames[kept].StartTime) < minSeparation {
				ok = false
				break
			}
		}
		if ok {
			accepted = append(accepted, idx)
		}
	}
	sort.Ints(accepted)
	return accepted
}

// prominence walks outward from peak i to the nearest lower local
// minimum on each side and subtracts the deeper of the two valleys
// from the peak magnitude. When a side runs into the buffer edge
// without a valley, the adaptive threshold stands in for it.
func prominence(frames []EnergyFrame, i int, threshold float64) float64 {
	left, okL := nearestValley(frames, i, -1)
	if !okL {
		left = threshold
	}
	right, okR := nearestValley(frames, i, +1)
	if !okR {
		right = threshold
	}

	valley := left
	if right < valley {
		valley = right
	}
	p := frames[i].Energy - valley
	if p < 0 {
		return 0
	}
	return p
}

// nearestValley scans from i in direction dir (+1 or -1) for the first
// interior local minimum.
func nearestValley(frames []EnergyFrame, i, dir int) (float64, bool) {
	for j := i + dir; j > 0 && j < len(frames)-1; j += dir {
		if frames[j].Energy <= frames[j-1].Energy && frames[j].Energy <= frames[j+1].Energy {
			return frames[j].Energy, true
		}
	}
	return 0, false
}
