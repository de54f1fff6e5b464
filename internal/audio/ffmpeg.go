package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yassineab/peakframe/pkg/utils"
)

// ExtractConfig controls audio extraction.
type ExtractConfig struct {
	SampleRate int
}

// ExtractMonoWAV pulls the audio track out of a media file and writes
// it as mono 16-bit PCM WAV at the configured sample rate. The output
// lands in outputDir named after the input file; the write goes
// through a temp file so a killed ffmpeg never leaves a half-written
// WAV behind.
func ExtractMonoWAV(ctx context.Context, inputPath, outputDir string, cfg ExtractConfig) (string, error) {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
	}

	if err := utils.MakeDir(outputDir); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outputPath := filepath.Join(outputDir, base+".wav")

	tmpPath := outputPath + ".tmp.wav"
	defer os.Remove(tmpPath)

	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-y",
		"-v", "quiet",
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(cfg.SampleRate),
		"-c:a", "pcm_s16le",
		"-f", "wav",
		tmpPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("ffmpeg failed: %v (%s)", err, out)
	}

	if err := utils.MoveFile(tmpPath, outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}

// ExtractFrame grabs a single video frame at timeSeconds and writes it
// as a JPEG to outputPath. Seeking happens before the input is opened,
// so extraction cost does not grow with the timestamp.
func ExtractFrame(ctx context.Context, videoPath string, timeSeconds float64, outputPath string) error {
	if timeSeconds < 0 {
		return fmt.Errorf("frame time %v must not be negative", timeSeconds)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	if err := utils.MakeDir(filepath.Dir(outputPath)); err != nil {
		return err
	}

	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-y",
		"-v", "quiet",
		"-ss", strconv.FormatFloat(timeSeconds, 'f', 3, 64),
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		outputPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg frame extraction failed: %v (%s)", err, out)
	}

	if _, err := os.Stat(outputPath); err != nil {
		return fmt.Errorf("ffmpeg produced no frame at %vs: %w", timeSeconds, err)
	}
	return nil
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
	} `json:"streams"`
}

// ProbeDuration reads the container duration of a media file via
// ffprobe and verifies the file actually carries an audio stream.
func ProbeDuration(ctx context.Context, path string) (float64, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(
		ctx,
		"ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	hasAudio := false
	for _, s := range probe.Streams {
		if s.CodecType == "audio" {
			hasAudio = true
			break
		}
	}
	if !hasAudio {
		return 0, errors.New("no audio stream found")
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration %q: %w", probe.Format.Duration, err)
	}
	return duration, nil
}
