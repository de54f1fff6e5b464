package analysis

import "errors"

// Pipeline status values. StatusPartial is set by the orchestration
// layer when analysis succeeded but a collaborator (transcription,
// frame extraction) did not.
const (
	StatusOK              = "ok"
	StatusNoPeaksFallback = "no_peaks_fallback"
	StatusPartial         = "partial"
	StatusError           = "error"
)

// PipelineResult is the structured outcome of one analysis run. It is
// always produced, even for failed runs, so the orchestration layer
// can build an HTTP response without special-casing errors.
type PipelineResult struct {
	ChosenTime  float64 `json:"chosen_time_seconds"`
	RankedPeaks []Peak  `json:"ranked_peaks"`
	Status      string  `json:"status"`
	Reason      string  `json:"reason,omitempty"`
}

// Assemble packages a selection (or the error that prevented one) into
// a PipelineResult. It never fails: ErrNoPeakFound becomes a
// no_peaks_fallback result anchored at fallbackTime, any other error
// becomes a status error result, and the ranked list is capped at
// topN.
func Assemble(sel *MomentSelection, runErr error, topN int, fallbackTime float64) PipelineResult {
	switch {
	case runErr == nil && sel != nil:
		return PipelineResult{
			ChosenTime:  sel.ChosenTime,
			RankedPeaks: capPeaks(sel.Peaks, topN),
			Status:      StatusOK,
		}
	case errors.Is(runErr, ErrNoPeakFound):
		return PipelineResult{
			ChosenTime:  fallbackTime,
			RankedPeaks: []Peak{},
			Status:      StatusNoPeaksFallback,
			Reason:      runErr.Error(),
		}
	default:
		reason := "analysis produced no selection"
		if runErr != nil {
			reason = runErr.Error()
		}
		return PipelineResult{
			ChosenTime:  fallbackTime,
			RankedPeaks: []Peak{},
			Status:      StatusError,
			Reason:      reason,
		}
	}
}

func capPeaks(peaks []Peak, topN int) []Peak {
	if topN > 0 && len(peaks) > topN {
		peaks = peaks[:topN]
	}
	out := make([]Peak, len(peaks))
	copy(out, peaks)
	return out
}
