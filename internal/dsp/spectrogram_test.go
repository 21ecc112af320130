package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echofp/echofp/internal/config"
)

func sineWave(freqHz float64, sr, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freqHz * float64(i) / float64(sr))
	}
	return samples
}

func TestComputeRejectsEmptyInput(t *testing.T) {
	_, err := Compute(nil, config.Default())
	assert.Error(t, err)
}

func TestComputeNormalizesToZeroDBPeak(t *testing.T) {
	cfg := config.Default()
	samples := sineWave(440, cfg.SampleRate, cfg.SampleRate) // 1s of 440Hz
	spec, err := Compute(samples, cfg)
	require.NoError(t, err)
	require.Greater(t, spec.NumFrames(), 0)

	maxDB := -math.MaxFloat64
	for _, frame := range spec.Frames {
		for _, db := range frame {
			if db > maxDB {
				maxDB = db
			}
			assert.GreaterOrEqual(t, db, minDB)
			assert.LessOrEqual(t, db, 0.0)
		}
	}
	assert.InDelta(t, 0.0, maxDB, 1e-6)
}

func TestComputeFrameCountMatchesHopGrid(t *testing.T) {
	cfg := config.Default()
	samples := sineWave(440, cfg.SampleRate, 4*cfg.Hop())
	spec, err := Compute(samples, cfg)
	require.NoError(t, err)
	assert.Equal(t, (len(samples)+cfg.Hop()-1)/cfg.Hop(), spec.NumFrames())
	assert.Equal(t, cfg.NFFT/2+1, spec.NumBins)
}
