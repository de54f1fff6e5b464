package service

import (
	"context"

	"github.com/yassineab/peakframe/internal/audio"
	"github.com/yassineab/peakframe/internal/fetch"
)

// VideoFetcher downloads a video and reports its metadata.
type VideoFetcher interface {
	Fetch(ctx context.Context, videoID string) (*fetch.FetchedVideo, error)
}

// Transcriber converts an audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// AudioExtractor pulls a mono analysis track out of a video file.
type AudioExtractor interface {
	ExtractMonoWAV(ctx context.Context, videoPath, outputDir string) (string, error)
}

// FrameGrabber saves a still frame from a video at a point in time.
type FrameGrabber interface {
	ExtractFrame(ctx context.Context, videoPath string, timeSeconds float64, outputPath string) error
}

// ResultStore caches finished results keyed by video ID.
type ResultStore interface {
	Get(key string) (*ProcessResult, bool)
	Put(key string, value *ProcessResult)
}

// Logger is the logging surface the service needs.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ffmpegExtractor is the production AudioExtractor and FrameGrabber.
type ffmpegExtractor struct {
	sampleRate int
}

func (e ffmpegExtractor) ExtractMonoWAV(ctx context.Context, videoPath, outputDir string) (string, error) {
	return audio.ExtractMonoWAV(ctx, videoPath, outputDir, audio.ExtractConfig{SampleRate: e.sampleRate})
}

func (e ffmpegExtractor) ExtractFrame(ctx context.Context, videoPath string, timeSeconds float64, outputPath string) error {
	return audio.ExtractFrame(ctx, videoPath, timeSeconds, outputPath)
}
