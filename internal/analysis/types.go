package analysis

// SampleBuffer holds a mono PCM stream normalized to [-1, 1].
// It is immutable once produced by the decoder and owned by a single
// pipeline run.
type SampleBuffer struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the buffer length in seconds.
func (b SampleBuffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// EnergyFrame is one fixed-width analysis window reduced to a single
// energy value. StartTime is strictly increasing across a profile.
type EnergyFrame struct {
	StartTime float64 `json:"start_time_seconds"`
	Energy    float64 `json:"energy"`
}

// Peak is a local maximum in the energy series that cleared the
// adaptive threshold.
type Peak struct {
	Time       float64 `json:"time_seconds"`
	Magnitude  float64 `json:"magnitude"`
	Prominence float64 `json:"prominence"`
}

// MomentSelection is the outcome of ranking detected peaks. Peaks is
// sorted by descending prominence and Rank is the index of the chosen
// peak within it. Immutable after creation.
type MomentSelection struct {
	ChosenTime float64
	Peaks      []Peak
	Rank       int
}
