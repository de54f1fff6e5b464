package main

import (
	"fmt"
	"time"

	"github.com/yassineab/peakframe/internal/service"
	"github.com/yassineab/peakframe/pkg/utils"
)

// ProcessVideoRequest is the body of POST /api/process-video.
type ProcessVideoRequest struct {
	VideoID string `json:"video_id"`
	APIKey  string `json:"api_key,omitempty"`
}

// Validate checks the request and returns the normalized video ID.
func (r *ProcessVideoRequest) Validate() (string, error) {
	if r.VideoID == "" {
		return "", fmt.Errorf("video_id is required")
	}
	id, err := utils.NormalizeVideoID(r.VideoID)
	if err != nil {
		return "", fmt.Errorf("video_id: %w", err)
	}
	return id, nil
}

// RankedPeak is one detected peak in the response.
type RankedPeak struct {
	TimeSeconds float64 `json:"time_seconds"`
	Timestamp   string  `json:"timestamp"`
	Magnitude   float64 `json:"magnitude"`
	Prominence  float64 `json:"prominence"`
}

// ProcessVideoResponse is the body returned for a processed video.
type ProcessVideoResponse struct {
	VideoID           string       `json:"video_id"`
	Title             string       `json:"title"`
	Channel           string       `json:"channel,omitempty"`
	DurationSeconds   float64      `json:"duration_seconds"`
	Transcription     string       `json:"transcription"`
	ChosenTimeSeconds float64      `json:"chosen_time_seconds"`
	ChosenTimestamp   string       `json:"chosen_timestamp"`
	RankedPeaks       []RankedPeak `json:"ranked_peaks"`
	FrameURL          string       `json:"frame_url,omitempty"`
	Status            string       `json:"status"`
	Reason            string       `json:"reason,omitempty"`
	ProcessedAt       time.Time    `json:"processed_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// MetricsResponse is the body of GET /api/health/metrics.
type MetricsResponse struct {
	Stats  service.Stats `json:"stats"`
	Uptime string        `json:"uptime"`
}

// ErrorResponse is the body of any error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
