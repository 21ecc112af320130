package dsp

// reflectPadCenter pads samples on both sides by pad using whole-sample
// (non edge-duplicating) reflection, matching numpy's default
// pad(mode="reflect"): the edge sample itself is the mirror axis and is
// not repeated. librosa's stft(center=True) uses this convention to pad
// the signal before framing.
func reflectPadCenter(samples []float64, pad int) []float64 {
	n := len(samples)
	out := make([]float64, n+2*pad)
	copy(out[pad:pad+n], samples)

	for i := 0; i < pad; i++ {
		// Mirror around index 0, excluding index 0 itself.
		srcLeft := i + 1
		if srcLeft >= n {
			srcLeft = n - 1
		}
		out[pad-1-i] = samples[srcLeft]

		srcRight := n - 2 - i
		if srcRight < 0 {
			srcRight = 0
		}
		out[pad+n+i] = samples[srcRight]
	}
	return out
}

// ReflectBorder returns the value at virtual index idx (which may fall
// outside [0,n)) of a sequence of length n under half-sample-symmetric
// reflection with edge duplication, matching scipy.ndimage's default
// mode="reflect": the edge value IS repeated before mirroring.
//
// This is a distinct convention from reflectPadCenter above and must
// not be confused with it: it is used only by the peak-picking max
// filter, never by STFT framing.
func ReflectBorder(idx, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	idx %= period
	if idx < 0 {
		idx += period
	}
	if idx < n {
		return idx
	}
	return period - 1 - idx
}
