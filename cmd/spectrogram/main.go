// The spectrogram command renders PNG spectrograms for WAV files so
// detected peaks can be inspected visually.
package main

import (
	"flag"
	"image"
	"image/draw"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/eligwz/spectrogram"

	"github.com/yassineab/peakframe/internal/audio"
	"github.com/yassineab/peakframe/pkg/logger"
	"github.com/yassineab/peakframe/pkg/utils"
)

func main() {
	var (
		inputDir  = flag.String("input", "tmp", "directory of WAV files")
		outputDir = flag.String("output", "spectrograms", "directory for PNG output")
		width     = flag.Int("width", 2048, "image width in pixels")
		height    = flag.Int("height", 512, "image height in pixels (frequency bins)")
	)
	flag.Parse()

	log := logger.GetLogger()

	if err := utils.MakeDir(*outputDir); err != nil {
		log.Fatalf("preparing output dir: %v", err)
	}

	err := filepath.WalkDir(*inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".wav") {
			return nil
		}

		samples, rate, err := audio.ReadWAV(path)
		if err != nil {
			log.Warnf("skipping %s: %v", path, err)
			return nil
		}
		log.Infof("rendering %s (%d samples at %d Hz)", path, len(samples), rate)

		outputPath := filepath.Join(*outputDir, filepath.Base(path)+".png")
		if err := render(samples, rate, *width, *height, outputPath); err != nil {
			log.Errorf("rendering %s: %v", path, err)
			return nil
		}
		log.Infof("saved %s", outputPath)
		return nil
	})
	if err != nil {
		log.Fatalf("walking %s: %v", *inputDir, err)
	}
}

func render(samples []float64, rate, width, height int, outputPath string) error {
	img := spectrogram.NewImage128(image.Rect(0, 0, width, height))

	black := spectrogram.ParseColor("000000")
	draw.Draw(img, img.Bounds(), image.NewUniform(black), image.Point{}, draw.Src)

	// Hamming window, FFT path, linear magnitude scale.
	spectrogram.Drawfft(img, samples, uint32(rate), uint32(height), false, false, true, false)

	return spectrogram.SavePng(img, outputPath)
}
