// The server command exposes the key-moment pipeline over HTTP.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/yassineab/peakframe/internal/analysis"
	"github.com/yassineab/peakframe/internal/fetch"
	"github.com/yassineab/peakframe/internal/service"
	"github.com/yassineab/peakframe/internal/transcribe"
	"github.com/yassineab/peakframe/pkg/logger"
)

func main() {
	var (
		port       = flag.String("port", envOr("PORT", "8080"), "listen port")
		tempDir    = flag.String("temp-dir", envOr("TEMP_DIR", "tmp"), "working directory for downloads")
		framesDir  = flag.String("frames-dir", envOr("FRAMES_DIR", "frames"), "directory for extracted frames")
		origins    = flag.String("origins", envOr("ALLOWED_ORIGINS", "*"), "comma-separated CORS origins")
		sampleRate = flag.Int("sample-rate", 16000, "analysis track sample rate")
		window     = flag.Float64("window", 0.2, "energy window in seconds")
		hop        = flag.Float64("hop", 0.1, "energy hop in seconds")
		thresholdK = flag.Float64("threshold-k", 1.25, "stddev multiplier for the peak threshold")
		minSep     = flag.Float64("min-separation", 1.5, "minimum seconds between peaks")
		topN       = flag.Int("top-n", 5, "peaks to report")
		profile    = flag.String("profile", analysis.ProfileRMS, "energy profile: rms or flux")
		timeout    = flag.Duration("timeout", 5*time.Minute, "per-video processing timeout")
	)
	flag.Parse()

	log := logger.GetLogger()

	installCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := fetch.Install(installCtx); err != nil {
		log.Warnf("yt-dlp install check failed: %v", err)
	}
	cancel()

	opts := []service.Option{
		service.WithTempDir(*tempDir),
		service.WithFramesDir(*framesDir),
		service.WithSampleRate(*sampleRate),
		service.WithTimeout(*timeout),
		service.WithAnalysisConfig(analysis.Config{
			WindowSeconds:        *window,
			HopSeconds:           *hop,
			ThresholdK:           *thresholdK,
			MinSeparationSeconds: *minSep,
			TopN:                 *topN,
			Profile:              *profile,
		}),
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		opts = append(opts, service.WithTranscriber(transcribe.New(key)))
	} else {
		log.Warnf("OPENAI_API_KEY not set, transcription disabled")
	}

	svc, err := service.NewService(opts...)
	if err != nil {
		log.Fatalf("initializing service: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + *port,
		Handler:           newServer(svc).routes(svc.FramesDir(), splitOrigins(*origins)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
