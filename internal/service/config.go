package service

import (
	"time"

	"github.com/yassineab/peakframe/internal/analysis"
)

const (
	defaultTempDir        = "tmp"
	defaultFramesDir      = "frames"
	defaultSampleRate     = 16000
	defaultRequestTimeout = 5 * time.Minute
	defaultCacheSize      = 128
)

// Option configures a Service.
type Option func(*Service)

// WithTempDir sets the working directory for downloads and extracted
// audio.
func WithTempDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.tempDir = dir
		}
	}
}

// WithFramesDir sets the directory extracted frames are written to.
func WithFramesDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.framesDir = dir
		}
	}
}

// WithAnalysisConfig replaces the analysis tuning.
func WithAnalysisConfig(cfg analysis.Config) Option {
	return func(s *Service) {
		s.analysisCfg = cfg
	}
}

// WithSampleRate sets the sample rate of the extracted analysis track.
func WithSampleRate(rate int) Option {
	return func(s *Service) {
		if rate > 0 {
			s.sampleRate = rate
		}
	}
}

// WithTimeout bounds the end-to-end processing time per video.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger replaces the service logger.
func WithLogger(log Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithFetcher replaces the video downloader.
func WithFetcher(f VideoFetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithTranscriber enables transcription. Without one the pipeline
// still runs and reports an empty transcript.
func WithTranscriber(t Transcriber) Option {
	return func(s *Service) {
		s.transcriber = t
	}
}

// WithAudioExtractor replaces the audio extraction backend.
func WithAudioExtractor(e AudioExtractor) Option {
	return func(s *Service) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithFrameGrabber replaces the frame extraction backend.
func WithFrameGrabber(g FrameGrabber) Option {
	return func(s *Service) {
		if g != nil {
			s.grabber = g
		}
	}
}

// WithStore replaces the result cache.
func WithStore(st ResultStore) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}
