// Package audioio adapts arbitrary audio files into the mono float64
// sample buffers the fingerprinting pipeline expects, by shelling out
// to ffmpeg/ffprobe. These are external collaborators only: nothing
// under internal/ imports this package, so the core pipeline has no
// dependency on ffmpeg being installed.
package audioio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/echofp/echofp/internal/audio"
	"github.com/echofp/echofp/pkg/fsutil"
)

// ConvertConfig controls ConvertToMonoWAV.
type ConvertConfig struct {
	SampleRate int
}

// ConvertToMonoWAV transcodes inputPath to a mono, 16-bit PCM WAV file
// in outputDir at cfg.SampleRate, returning the output path.
func ConvertToMonoWAV(ctx context.Context, inputPath, outputDir string, cfg ConvertConfig) (string, error) {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 44100
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	if err := fsutil.MakeDir(outputDir); err != nil {
		return "", err
	}

	baseName := filepath.Base(inputPath)
	outputPath := filepath.Join(outputDir, baseName)
	tmpPath := outputPath + ".tmp.wav"
	defer os.Remove(tmpPath)

	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-y",
		"-v", "quiet",
		"-i", inputPath,
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", cfg.SampleRate),
		"-c:a", "pcm_s16le",
		tmpPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("ffmpeg failed: %v (%s)", err, out)
	}

	if err := fsutil.MoveFile(tmpPath, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

// LoadSamples converts inputPath to mono WAV at sampleRate and returns
// its samples as float64, ready for the fingerprinting pipeline.
func LoadSamples(ctx context.Context, inputPath, tempDir string, sampleRate int) ([]float64, int, error) {
	wavPath, err := ConvertToMonoWAV(ctx, inputPath, tempDir, ConvertConfig{SampleRate: sampleRate})
	if err != nil {
		return nil, 0, fmt.Errorf("audio conversion failed: %w", err)
	}
	defer os.Remove(wavPath)
	return audio.ReadWavAsFloat64(wavPath)
}
