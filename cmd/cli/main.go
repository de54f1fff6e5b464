// The cli command analyzes a local media file and prints the detected
// key moments as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yassineab/peakframe/internal/analysis"
	"github.com/yassineab/peakframe/internal/audio"
	"github.com/yassineab/peakframe/pkg/logger"
	"github.com/yassineab/peakframe/pkg/utils"
)

type output struct {
	Input             string            `json:"input"`
	DurationSeconds   float64           `json:"duration_seconds"`
	ChosenTimeSeconds float64           `json:"chosen_time_seconds"`
	ChosenTimestamp   string            `json:"chosen_timestamp"`
	Status            string            `json:"status"`
	Reason            string            `json:"reason,omitempty"`
	Peaks             []timestampedPeak `json:"peaks"`
}

type timestampedPeak struct {
	TimeSeconds float64 `json:"time_seconds"`
	Timestamp   string  `json:"timestamp"`
	Magnitude   float64 `json:"magnitude"`
	Prominence  float64 `json:"prominence"`
}

func main() {
	var (
		input      = flag.String("input", "", "audio or video file to analyze")
		window     = flag.Float64("window", 0.2, "energy window in seconds")
		hop        = flag.Float64("hop", 0.1, "energy hop in seconds")
		thresholdK = flag.Float64("threshold-k", 1.25, "stddev multiplier for the peak threshold")
		minSep     = flag.Float64("min-separation", 1.5, "minimum seconds between peaks")
		topN       = flag.Int("top-n", 5, "peaks to report")
		profile    = flag.String("profile", analysis.ProfileRMS, "energy profile: rms or flux")
		sampleRate = flag.Int("sample-rate", 16000, "sample rate for non-WAV inputs")
		framePath  = flag.String("frame", "", "optionally save a frame at the chosen time (video inputs)")
	)
	flag.Parse()

	log := logger.GetLogger()
	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	wavPath := *input
	if !strings.EqualFold(filepath.Ext(wavPath), ".wav") {
		extracted, err := audio.ExtractMonoWAV(ctx, *input, os.TempDir(), audio.ExtractConfig{SampleRate: *sampleRate})
		if err != nil {
			log.Fatalf("extracting audio: %v", err)
		}
		defer utils.DeleteFile(extracted)
		wavPath = extracted
	}

	samples, rate, err := audio.ReadWAV(wavPath)
	if err != nil {
		log.Fatalf("reading audio: %v", err)
	}
	buf := analysis.SampleBuffer{Samples: samples, SampleRate: rate}

	analyzer, err := analysis.NewAnalyzer(analysis.Config{
		WindowSeconds:        *window,
		HopSeconds:           *hop,
		ThresholdK:           *thresholdK,
		MinSeparationSeconds: *minSep,
		TopN:                 *topN,
		Profile:              *profile,
	})
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	result, err := analyzer.Analyze(ctx, buf)
	if err != nil {
		log.Fatalf("analyzing: %v", err)
	}

	if *framePath != "" {
		if err := audio.ExtractFrame(ctx, *input, result.ChosenTime, *framePath); err != nil {
			log.Errorf("saving frame: %v", err)
		} else {
			log.Infof("frame saved to %s", *framePath)
		}
	}

	out := output{
		Input:             *input,
		DurationSeconds:   buf.Duration(),
		ChosenTimeSeconds: result.ChosenTime,
		ChosenTimestamp:   utils.FormatTimestamp(result.ChosenTime),
		Status:            result.Status,
		Reason:            result.Reason,
		Peaks:             make([]timestampedPeak, 0, len(result.RankedPeaks)),
	}
	for _, p := range result.RankedPeaks {
		out.Peaks = append(out.Peaks, timestampedPeak{
			TimeSeconds: p.Time,
			Timestamp:   utils.FormatTimestamp(p.Time),
			Magnitude:   p.Magnitude,
			Prominence:  p.Prominence,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
