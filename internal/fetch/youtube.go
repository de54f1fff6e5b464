// Package fetch downloads YouTube videos through yt-dlp and reports
// the basic metadata the rest of the pipeline needs.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/yassineab/peakframe/pkg/utils"
)

// Picks a single mp4 where possible so ffmpeg can seek it for frame
// extraction without remuxing.
const defaultFormat = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"

const defaultTimeout = 10 * time.Minute

// FetchedVideo describes a downloaded video on local disk.
type FetchedVideo struct {
	Path            string
	ID              string
	Title           string
	Channel         string
	DurationSeconds float64
}

// videoInfo is the subset of yt-dlp's JSON dump we care about.
type videoInfo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Channel  string  `json:"channel"`
	Uploader string  `json:"uploader"`
	Duration float64 `json:"duration"`
	Ext      string  `json:"ext"`
}

// Fetcher downloads videos into a working directory.
type Fetcher struct {
	dir     string
	format  string
	timeout time.Duration
}

// NewFetcher returns a Fetcher that stores downloads under dir.
func NewFetcher(dir string) *Fetcher {
	return &Fetcher{
		dir:     dir,
		format:  defaultFormat,
		timeout: defaultTimeout,
	}
}

// Install ensures a yt-dlp binary is available, downloading one if the
// host has none. Call once at startup.
func Install(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return fmt.Errorf("installing yt-dlp: %w", err)
	}
	return nil
}

// Fetch downloads the video with the given ID and returns its local
// path plus metadata. The ID must already be normalized.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) (*FetchedVideo, error) {
	if !utils.IsValidVideoID(videoID) {
		return nil, fmt.Errorf("invalid video id %q", videoID)
	}
	if err := utils.MakeDir(f.dir); err != nil {
		return nil, fmt.Errorf("preparing download dir: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	cmd := ytdlp.New().
		NoWarnings().
		NoPlaylist().
		NoProgress().
		PrintJSON().
		Format(f.format).
		Output(filepath.Join(f.dir, "%(id)s.%(ext)s"))

	result, err := cmd.Run(ctx, utils.WatchURL(videoID))
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", videoID, err)
	}

	info, err := parseInfo(result.Stdout)
	if err != nil {
		return nil, fmt.Errorf("parsing yt-dlp output for %s: %w", videoID, err)
	}

	path, err := f.locate(videoID, info.Ext)
	if err != nil {
		return nil, err
	}

	channel := info.Channel
	if channel == "" {
		channel = info.Uploader
	}
	return &FetchedVideo{
		Path:            path,
		ID:              videoID,
		Title:           info.Title,
		Channel:         channel,
		DurationSeconds: info.Duration,
	}, nil
}

// parseInfo extracts the metadata object from yt-dlp's stdout. With
// --print-json the dump is the last non-empty JSON line.
func parseInfo(stdout string) (*videoInfo, error) {
	dec := json.NewDecoder(strings.NewReader(stdout))
	var last *videoInfo
	for dec.More() {
		var info videoInfo
		if err := dec.Decode(&info); err != nil {
			break
		}
		last = &info
	}
	if last == nil {
		return nil, fmt.Errorf("no metadata in output")
	}
	return last, nil
}

// locate finds the downloaded file, trying the reported extension
// first and then the usual merge outputs.
func (f *Fetcher) locate(videoID, ext string) (string, error) {
	candidates := []string{ext, "mp4", "mkv", "webm", "m4a"}
	for _, e := range candidates {
		if e == "" {
			continue
		}
		path := filepath.Join(f.dir, videoID+"."+e)
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return path, nil
		}
	}
	return "", fmt.Errorf("downloaded file for %s not found in %s", videoID, f.dir)
}
