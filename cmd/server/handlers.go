package main

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"github.com/yassineab/peakframe/internal/service"
	"github.com/yassineab/peakframe/pkg/logger"
	"github.com/yassineab/peakframe/pkg/utils"
)

const serviceVersion = "1.0.0"

type server struct {
	svc     *service.Service
	log     *logger.Logger
	started time.Time
}

func newServer(svc *service.Service) *server {
	return &server{
		svc:     svc,
		log:     logger.GetLogger(),
		started: time.Now(),
	}
}

func (s *server) handleProcessVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ProcessVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	videoID, err := req.Validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.svc.ProcessVideo(r.Context(), videoID)
	if err != nil {
		s.log.Errorf("processing %s failed: %v", videoID, err)
		writeError(w, http.StatusInternalServerError, "processing failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toResponse(res))
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "peakframe",
		Version: serviceVersion,
	})
}

func (s *server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MetricsResponse{
		Stats:  s.svc.Stats(),
		Uptime: time.Since(s.started).Round(time.Second).String(),
	})
}

func toResponse(res *service.ProcessResult) ProcessVideoResponse {
	peaks := make([]RankedPeak, 0, len(res.Analysis.RankedPeaks))
	for _, p := range res.Analysis.RankedPeaks {
		peaks = append(peaks, RankedPeak{
			TimeSeconds: p.Time,
			Timestamp:   utils.FormatTimestamp(p.Time),
			Magnitude:   p.Magnitude,
			Prominence:  p.Prominence,
		})
	}

	var frameURL string
	if res.FramePath != "" {
		frameURL = "/frames/" + filepath.Base(res.FramePath)
	}

	return ProcessVideoResponse{
		VideoID:           res.VideoID,
		Title:             res.Title,
		Channel:           res.Channel,
		DurationSeconds:   res.DurationSeconds,
		Transcription:     res.Transcription,
		ChosenTimeSeconds: res.Analysis.ChosenTime,
		ChosenTimestamp:   utils.FormatTimestamp(res.Analysis.ChosenTime),
		RankedPeaks:       peaks,
		FrameURL:          frameURL,
		Status:            res.Analysis.Status,
		Reason:            res.Analysis.Reason,
		ProcessedAt:       res.ProcessedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
