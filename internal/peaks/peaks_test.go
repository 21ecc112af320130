package peaks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echofp/echofp/internal/config"
)

func flatFrames(nFrames, nBins int, fill float64) [][]float64 {
	frames := make([][]float64, nFrames)
	for i := range frames {
		frames[i] = make([]float64, nBins)
		for j := range frames[i] {
			frames[i][j] = fill
		}
	}
	return frames
}

func TestExtractFindsSingleSpike(t *testing.T) {
	cfg := config.Default()
	cfg.NumBands = 1
	cfg.FreqNeighborhood = 2
	cfg.TimeNeighborhood = 2
	cfg.AmplitudeThreshold = -60

	frames := flatFrames(10, 20, -80)
	frames[5][10] = -10 // a single strong spike

	pks := Extract(frames, cfg)
	require.Len(t, pks, 1)
	assert.Equal(t, 5, pks[0].TimeIdx)
	assert.Equal(t, 10, pks[0].FreqIdx)
	assert.InDelta(t, -10.0, pks[0].MagDB, 1e-9)
}

func TestExtractGatesOnAmplitudeThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.NumBands = 1
	cfg.AmplitudeThreshold = 0 // nothing in a silent signal clears this

	frames := flatFrames(10, 20, -80)
	pks := Extract(frames, cfg)
	assert.Empty(t, pks)
}

func TestExtractResultsAreSortedAndDeduped(t *testing.T) {
	cfg := config.Default()
	cfg.NumBands = 2
	cfg.FreqNeighborhood = 1
	cfg.TimeNeighborhood = 1
	cfg.AmplitudeThreshold = -60

	frames := flatFrames(5, 10, -80)
	frames[1][2] = -5
	frames[3][8] = -5

	pks := Extract(frames, cfg)
	for i := 1; i < len(pks); i++ {
		prev, cur := pks[i-1], pks[i]
		assert.True(t, prev.TimeIdx < cur.TimeIdx || (prev.TimeIdx == cur.TimeIdx && prev.FreqIdx < cur.FreqIdx))
	}
}

func TestBandBoundariesCoverAllBins(t *testing.T) {
	edges := bandBoundaries(10, 3)
	require.Len(t, edges, 3)
	assert.Equal(t, 0, edges[0][0])
	assert.Equal(t, 10, edges[len(edges)-1][1])
	for i := 1; i < len(edges); i++ {
		assert.Equal(t, edges[i-1][1], edges[i][0])
	}
}

func TestBandBoundariesLastBandAbsorbsRemainder(t *testing.T) {
	// 1025 bins over 6 bands: 170*5 = 850, remainder 175 goes entirely
	// to the last band, not spread one-per-band across the first five.
	edges := bandBoundaries(1025, 6)
	require.Len(t, edges, 6)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 170, edges[i][1]-edges[i][0], "band %d width", i)
	}
	assert.Equal(t, 175, edges[5][1]-edges[5][0])
}
