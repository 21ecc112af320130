package peaks

import "github.com/echofp/echofp/internal/dsp"

// slidingWindowMax computes, for every position i, the max of
// in[i-radius : i+radius+1] (border positions resolved by reflection),
// in O(n) via a monotonic deque. This is one separable pass of a 2D
// maximum filter; peaks.go runs it once per axis.
func slidingWindowMax(in []float64, radius int, reflect func(idx, n int) int) []float64 {
	n := len(in)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	get := func(idx int) float64 {
		return in[reflect(idx, n)]
	}

	// deque of indices (in the padded coordinate space), values
	// decreasing left to right.
	deque := make([]int, 0, n+2*radius)
	push := func(idx int) {
		v := get(idx)
		for len(deque) > 0 && get(deque[len(deque)-1]) <= v {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, idx)
	}
	popFront := func(lowerBound int) {
		for len(deque) > 0 && deque[0] < lowerBound {
			deque = deque[1:]
		}
	}

	// prime the window for i=0: indices [-radius, radius]
	for j := -radius; j <= radius; j++ {
		push(j)
	}
	out[0] = get(deque[0])

	for i := 1; i < n; i++ {
		push(i + radius)
		popFront(i - radius)
		out[i] = get(deque[0])
	}
	return out
}

// maxFilter2D applies a separable 2D maximum filter: a sliding-window
// max along the time axis (unbanded — time is never split into bands),
// followed by one along the frequency axis computed independently
// within each band in bandEdges, reproducing scipy.ndimage's
// edge-duplicating reflect border for an axis-aligned rectangular
// footprint. Restricting the frequency pass to each band's own slice
// (rather than the whole row) keeps a bin near a band boundary from
// being compared against its neighbor band's energy — the entire
// point of banding is that a loud band cannot suppress peaks in a
// quiet one via the max filter.
func maxFilter2D(frames [][]float64, timeRadius, freqRadius int, bandEdges [][2]int) [][]float64 {
	nFrames := len(frames)
	if nFrames == 0 {
		return nil
	}
	nBins := len(frames[0])

	// Pass 1: along time, independently per frequency bin.
	stage1 := make([][]float64, nFrames)
	for t := range stage1 {
		stage1[t] = make([]float64, nBins)
	}
	col := make([]float64, nFrames)
	for f := 0; f < nBins; f++ {
		for t := 0; t < nFrames; t++ {
			col[t] = frames[t][f]
		}
		res := slidingWindowMax(col, timeRadius, dsp.ReflectBorder)
		for t := 0; t < nFrames; t++ {
			stage1[t][f] = res[t]
		}
	}

	// Pass 2: along frequency, independently per time frame AND per
	// band, so each band reflects at its own edges instead of the
	// full row's.
	out := make([][]float64, nFrames)
	for t := 0; t < nFrames; t++ {
		out[t] = make([]float64, nBins)
		for _, edge := range bandEdges {
			lo, hi := edge[0], edge[1]
			if lo >= hi {
				continue
			}
			res := slidingWindowMax(stage1[t][lo:hi], freqRadius, dsp.ReflectBorder)
			copy(out[t][lo:hi], res)
		}
	}
	return out
}
