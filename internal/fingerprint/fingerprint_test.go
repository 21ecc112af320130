package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echofp/echofp/internal/config"
	"github.com/echofp/echofp/internal/peaks"
)

func TestGenerateRespectsFanOutAndDeltaBounds(t *testing.T) {
	cfg := config.Default()
	cfg.FanOut = 2
	cfg.DeltaTMin = 1
	cfg.DeltaTMaxSeconds = float64(5*cfg.Hop()) / float64(cfg.SampleRate)

	pks := []peaks.Peak{
		{TimeIdx: 0, FreqIdx: 10},
		{TimeIdx: 1, FreqIdx: 11}, // dt=1, within bounds
		{TimeIdx: 2, FreqIdx: 12}, // dt=2, within bounds
		{TimeIdx: 3, FreqIdx: 13}, // dt=3: 3rd candidate, exceeds fanout
		{TimeIdx: 100, FreqIdx: 14},
	}

	fps := Generate(pks, cfg)
	anchorCount := 0
	for _, fp := range fps {
		if fp.AnchorFrame == 0 {
			anchorCount++
		}
	}
	assert.LessOrEqual(t, anchorCount, cfg.FanOut)
	require.NotEmpty(t, fps)
}

func TestGenerateProducesNoFingerprintsForSinglePeak(t *testing.T) {
	cfg := config.Default()
	pks := []peaks.Peak{{TimeIdx: 0, FreqIdx: 10}}
	assert.Empty(t, Generate(pks, cfg))
}

func TestGenerateIsDeterministicRegardlessOfInputOrder(t *testing.T) {
	cfg := config.Default()
	a := []peaks.Peak{
		{TimeIdx: 5, FreqIdx: 1},
		{TimeIdx: 0, FreqIdx: 2},
		{TimeIdx: 2, FreqIdx: 3},
	}
	b := []peaks.Peak{a[2], a[0], a[1]}

	fpsA := Generate(a, cfg)
	fpsB := Generate(b, cfg)
	assert.Equal(t, fpsA, fpsB)
}
