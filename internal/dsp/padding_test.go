package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReflectPadCenterDoesNotDuplicateEdge(t *testing.T) {
	samples := []float64{1, 2, 3, 4, 5}
	padded := reflectPadCenter(samples, 2)
	// numpy.pad([1,2,3,4,5], 2, mode="reflect") == [3,2,1,2,3,4,5,4,3]
	want := []float64{3, 2, 1, 2, 3, 4, 5, 4, 3}
	assert.Equal(t, want, padded)
}

func TestReflectBorderEdgeDuplicates(t *testing.T) {
	n := 5
	// scipy reflect border for n=5: idx -1 maps to 0 (edge duplicated),
	// idx -2 maps to 1, idx n maps to n-1, idx n+1 maps to n-2.
	assert.Equal(t, 0, ReflectBorder(-1, n))
	assert.Equal(t, 1, ReflectBorder(-2, n))
	assert.Equal(t, n-1, ReflectBorder(n, n))
	assert.Equal(t, n-2, ReflectBorder(n+1, n))
}

func TestReflectBorderInBoundsIsIdentity(t *testing.T) {
	n := 10
	for i := 0; i < n; i++ {
		assert.Equal(t, i, ReflectBorder(i, n))
	}
}

func TestReflectBorderSingleElement(t *testing.T) {
	assert.Equal(t, 0, ReflectBorder(5, 1))
	assert.Equal(t, 0, ReflectBorder(-5, 1))
}
