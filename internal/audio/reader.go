// Package audio handles media decoding at the pipeline boundary:
// WAV decode into normalized mono samples, plus the ffmpeg/ffprobe
// helpers that produce analyzable WAV files, frames, and durations
// from arbitrary downloaded media.
package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ReadWAV decodes a PCM WAV file into mono samples normalized to
// [-1, 1] and returns them with the sample rate. Stereo input is
// downmixed by averaging the channels; more than two channels is
// rejected since ffmpeg already produces mono for us and anything
// else indicates a conversion bug upstream.
func ReadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding PCM: %w", err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, 0, errors.New("wav has no sample rate")
	}
	if len(buf.Data) == 0 {
		return nil, 0, errors.New("wav has no samples")
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}
	if bitDepth <= 0 || bitDepth > 32 {
		return nil, 0, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))

	switch buf.Format.NumChannels {
	case 1:
		out := make([]float64, len(buf.Data))
		for i, s := range buf.Data {
			out[i] = float64(s) * scale
		}
		return out, buf.Format.SampleRate, nil
	case 2:
		frames := len(buf.Data) / 2
		out := make([]float64, frames)
		for i := 0; i < frames; i++ {
			l := float64(buf.Data[2*i]) * scale
			r := float64(buf.Data[2*i+1]) * scale
			out[i] = (l + r) * 0.5
		}
		return out, buf.Format.SampleRate, nil
	default:
		return nil, 0, fmt.Errorf("unsupported channel count %d: only mono/stereo supported", buf.Format.NumChannels)
	}
}
