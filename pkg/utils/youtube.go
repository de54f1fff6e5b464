package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// videoIDAlphabet is the character set YouTube uses for video ids.
const videoIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"

// IsValidVideoID reports whether s looks like an 11-character YouTube
// video id.
func IsValidVideoID(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(videoIDAlphabet, r) {
			return false
		}
	}
	return true
}

// WatchURL builds the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// NormalizeVideoID accepts either a bare video id or any recognized
// YouTube URL form and returns the bare id.
func NormalizeVideoID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if IsValidVideoID(s) {
		return s, nil
	}
	id, err := ExtractYouTubeID(s)
	if err != nil {
		return "", err
	}
	if !IsValidVideoID(id) {
		return "", fmt.Errorf("extracted id %q is not a valid video id", id)
	}
	return id, nil
}

// ExtractYouTubeID pulls the video id out of watch, short, embed, and
// legacy /v/ URL forms.
func ExtractYouTubeID(youtubeURL string) (string, error) {
	u, err := url.Parse(youtubeURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	if strings.Contains(u.Host, "youtu.be") {
		id := strings.TrimPrefix(u.Path, "/")
		if idx := strings.Index(id, "?"); idx != -1 {
			id = id[:idx]
		}
		if id != "" {
			return id, nil
		}
		return "", fmt.Errorf("no video ID found in youtu.be URL")
	}

	if strings.Contains(u.Host, "youtube.com") {
		if strings.HasPrefix(u.Path, "/watch") {
			if videoID := u.Query().Get("v"); videoID != "" {
				return videoID, nil
			}
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				if id := strings.TrimPrefix(u.Path, prefix); id != "" {
					return id, nil
				}
			}
		}
	}

	return "", fmt.Errorf("unable to extract video ID from URL: %s", youtubeURL)
}
