// Package service orchestrates the key-moment pipeline: download,
// audio extraction, transcription, peak analysis, and frame capture.
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/yassineab/peakframe/internal/analysis"
	"github.com/yassineab/peakframe/internal/audio"
	"github.com/yassineab/peakframe/internal/fetch"
	"github.com/yassineab/peakframe/internal/store"
	"github.com/yassineab/peakframe/pkg/logger"
	"github.com/yassineab/peakframe/pkg/utils"
)

// ProcessResult is the finished output for one video.
type ProcessResult struct {
	VideoID         string
	Title           string
	Channel         string
	DurationSeconds float64
	Transcription   string
	Analysis        analysis.PipelineResult
	FramePath       string
	ProcessedAt     time.Time
}

// Stats are the service's running counters.
type Stats struct {
	Processed int64 `json:"processed"`
	CacheHits int64 `json:"cache_hits"`
	Failures  int64 `json:"failures"`
}

// Service runs the pipeline end to end. Concurrent requests for the
// same video share one run.
type Service struct {
	fetcher     VideoFetcher
	transcriber Transcriber
	extractor   AudioExtractor
	grabber     FrameGrabber
	store       ResultStore
	analyzer    *analysis.Analyzer
	log         Logger

	tempDir     string
	framesDir   string
	sampleRate  int
	timeout     time.Duration
	analysisCfg analysis.Config

	flight    singleflight.Group
	processed atomic.Int64
	cacheHits atomic.Int64
	failures  atomic.Int64
}

// NewService builds a Service with production defaults, overridable
// through options.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		tempDir:     defaultTempDir,
		framesDir:   defaultFramesDir,
		sampleRate:  defaultSampleRate,
		timeout:     defaultRequestTimeout,
		analysisCfg: analysis.DefaultConfig(),
		log:         logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	analyzer, err := analysis.NewAnalyzer(s.analysisCfg)
	if err != nil {
		return nil, err
	}
	s.analyzer = analyzer

	if s.fetcher == nil {
		s.fetcher = fetch.NewFetcher(s.tempDir)
	}
	if s.extractor == nil {
		s.extractor = ffmpegExtractor{sampleRate: s.sampleRate}
	}
	if s.grabber == nil {
		s.grabber = ffmpegExtractor{sampleRate: s.sampleRate}
	}
	if s.store == nil {
		s.store = store.NewLRU[string, *ProcessResult](defaultCacheSize)
	}

	for _, dir := range []string{s.tempDir, s.framesDir} {
		if err := utils.MakeDir(dir); err != nil {
			return nil, fmt.Errorf("preparing %s: %w", dir, err)
		}
	}
	return s, nil
}

// FramesDir returns the directory frames are written to.
func (s *Service) FramesDir() string { return s.framesDir }

// Stats returns a snapshot of the running counters.
func (s *Service) Stats() Stats {
	return Stats{
		Processed: s.processed.Load(),
		CacheHits: s.cacheHits.Load(),
		Failures:  s.failures.Load(),
	}
}

// ProcessVideo runs the full pipeline for a video ID or YouTube URL.
// Results are cached, and concurrent calls for the same video are
// collapsed into a single run.
func (s *Service) ProcessVideo(ctx context.Context, rawID string) (*ProcessResult, error) {
	videoID, err := utils.NormalizeVideoID(rawID)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.store.Get(videoID); ok {
		s.cacheHits.Add(1)
		s.log.Debugf("cache hit for %s", videoID)
		return cached, nil
	}

	// The run is shared across callers, so it must not die with the
	// caller that happened to start it. The service timeout still
	// bounds it inside process.
	runCtx := context.WithoutCancel(ctx)
	v, err, shared := s.flight.Do(videoID, func() (any, error) {
		return s.process(runCtx, videoID)
	})
	if err != nil {
		s.failures.Add(1)
		return nil, err
	}
	if shared {
		s.log.Debugf("joined in-flight run for %s", videoID)
	}
	return v.(*ProcessResult), nil
}

func (s *Service) process(ctx context.Context, videoID string) (*ProcessResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	s.log.Infof("processing %s", videoID)

	video, err := s.fetcher.Fetch(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetching video: %w", err)
	}
	defer utils.DeleteFile(video.Path)

	wavPath, err := s.extractor.ExtractMonoWAV(ctx, video.Path, s.tempDir)
	if err != nil {
		return nil, fmt.Errorf("extracting audio: %w", err)
	}
	defer utils.DeleteFile(wavPath)

	samples, rate, err := audio.ReadWAV(wavPath)
	if err != nil {
		return nil, fmt.Errorf("decoding audio: %w", err)
	}
	buf := analysis.SampleBuffer{Samples: samples, SampleRate: rate}

	var (
		transcript    string
		transcribeErr error
		result        analysis.PipelineResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var aerr error
		result, aerr = s.analyzer.Analyze(gctx, buf)
		return aerr
	})
	if s.transcriber != nil {
		g.Go(func() error {
			// A failed transcript degrades the result instead of
			// aborting the run.
			transcript, transcribeErr = s.transcriber.Transcribe(gctx, wavPath)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyzing audio: %w", err)
	}

	framePath, frameErr := s.captureFrame(ctx, video.Path, videoID, result.ChosenTime)

	if result.Status == analysis.StatusOK {
		switch {
		case transcribeErr != nil:
			result.Status = analysis.StatusPartial
			result.Reason = fmt.Sprintf("transcription failed: %v", transcribeErr)
		case frameErr != nil:
			result.Status = analysis.StatusPartial
			result.Reason = fmt.Sprintf("frame extraction failed: %v", frameErr)
		}
	}
	if transcribeErr != nil {
		s.log.Warnf("transcription failed for %s: %v", videoID, transcribeErr)
	}
	if frameErr != nil {
		s.log.Warnf("frame extraction failed for %s: %v", videoID, frameErr)
	}

	res := &ProcessResult{
		VideoID:         videoID,
		Title:           video.Title,
		Channel:         video.Channel,
		DurationSeconds: video.DurationSeconds,
		Transcription:   transcript,
		Analysis:        result,
		FramePath:       framePath,
		ProcessedAt:     time.Now().UTC(),
	}
	s.store.Put(videoID, res)
	s.processed.Add(1)
	s.log.Infof("processed %s in %s (status=%s, peaks=%d)",
		videoID, time.Since(start).Round(time.Millisecond), result.Status, len(result.RankedPeaks))
	return res, nil
}

func (s *Service) captureFrame(ctx context.Context, videoPath, videoID string, at float64) (string, error) {
	name := fmt.Sprintf("%s-%s.jpg", videoID, uuid.NewString())
	path := filepath.Join(s.framesDir, name)
	if err := s.grabber.ExtractFrame(ctx, videoPath, at, path); err != nil {
		return "", err
	}
	return path, nil
}
