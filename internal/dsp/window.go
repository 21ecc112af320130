package dsp

import "math"

// Hann returns an n-sample periodic Hann window, matching librosa's
// default window for stft (sym=False): w[i] = 0.5 - 0.5*cos(2*pi*i/n).
//
// The teacher's Hamming window used the symmetric (n-1) denominator;
// spec.md calls for the periodic Hann window librosa produces by
// default, so both the formula and the coefficients change here.
func Hann(n int) []float64 {
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}
