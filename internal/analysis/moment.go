package analysis

import (
	"fmt"
	"sort"
)

// Strategy orders two peaks; the peak that sorts first is the more
// salient one.
type Strategy func(a, b Peak) bool

// ByProminence ranks peaks by descending prominence, breaking ties by
// higher magnitude, then earlier timestamp.
func ByProminence(a, b Peak) bool {
	if a.Prominence != b.Prominence {
		return a.Prominence > b.Prominence
	}
	if a.Magnitude != b.Magnitude {
		return a.Magnitude > b.Magnitude
	}
	return a.Time < b.Time
}

// ByMagnitude ranks peaks by raw loudness, the ordering the original
// per-second dBFS scan used. Ties go to the earlier timestamp.
func ByMagnitude(a, b Peak) bool {
	if a.Magnitude != b.Magnitude {
		return a.Magnitude > b.Magnitude
	}
	return a.Time < b.Time
}

// SelectMoment ranks peaks with the given strategy (ByProminence when
// nil) and picks the top one. An empty peak list yields ErrNoPeakFound;
// the caller owns any fallback timestamp policy, since substituting
// one here would hide a real detection failure.
func SelectMoment(peaks []Peak, strategy Strategy) (MomentSelection, error) {
	if len(peaks) == 0 {
		return MomentSelection{}, fmt.Errorf("%w: no peak cleared the adaptive threshold", ErrNoPeakFound)
	}
	if strategy == nil {
		strategy = ByProminence
	}

	ranked := make([]Peak, len(peaks))
	copy(ranked, peaks)
	sort.SliceStable(ranked, func(i, j int) bool { return strategy(ranked[i], ranked[j]) })

	return MomentSelection{
		ChosenTime: ranked[0].Time,
		Peaks:      ranked,
		Rank:       0,
	}, nil
}
