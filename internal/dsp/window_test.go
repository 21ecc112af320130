package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHannEndpointsAndPeak(t *testing.T) {
	w := Hann(8)
	assert.Len(t, w, 8)
	assert.InDelta(t, 0.0, w[0], 1e-9)
	for _, v := range w {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestHannIsPeriodicNotSymmetric(t *testing.T) {
	// A periodic (librosa sym=False) window of length n does not
	// repeat its first sample at the last sample, unlike a symmetric
	// window of the same length.
	w := Hann(8)
	assert.NotEqual(t, w[0], w[7])
}
