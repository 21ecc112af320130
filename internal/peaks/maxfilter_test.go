package peaks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/echofp/echofp/internal/dsp"
)

func TestSlidingWindowMaxInterior(t *testing.T) {
	in := []float64{1, 5, 2, 2, 9, 3, 1}
	out := slidingWindowMax(in, 1, dsp.ReflectBorder)
	want := []float64{5, 5, 5, 9, 9, 9, 3}
	assert.Equal(t, want, out)
}

func TestSlidingWindowMaxZeroRadiusIsIdentity(t *testing.T) {
	in := []float64{3, -1, 4, 1, 5}
	out := slidingWindowMax(in, 0, dsp.ReflectBorder)
	assert.Equal(t, in, out)
}

func TestMaxFilter2DIsAtLeastAsLargeAsInput(t *testing.T) {
	frames := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	bandEdges := [][2]int{{0, 3}}
	out := maxFilter2D(frames, 1, 1, bandEdges)
	for t_ := range frames {
		for f := range frames[t_] {
			assert.GreaterOrEqual(t, out[t_][f], frames[t_][f])
		}
	}
	// The global max's own cell must still report the global max.
	assert.Equal(t, 9.0, out[2][2])
}

func TestMaxFilter2DDoesNotLeakAcrossBands(t *testing.T) {
	// A single loud bin at f=3, right on a band boundary (bands are
	// [0,4) and [4,8)). With a frequency radius of 2, an unbanded
	// filter would pull this value into band two's f=4 and f=5 cells;
	// banding must keep it confined to band one.
	frames := [][]float64{
		{-80, -80, -80, -10, -80, -80, -80, -80},
	}
	bandEdges := [][2]int{{0, 4}, {4, 8}}
	out := maxFilter2D(frames, 0, 2, bandEdges)

	assert.Equal(t, -10.0, out[0][3])
	assert.Equal(t, -80.0, out[0][4])
	assert.Equal(t, -80.0, out[0][5])
}
