// Package dsp computes the time-frequency representation that feeds
// peak picking: a centered, Hann-windowed STFT converted to a
// max-normalized decibel scale.
package dsp

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/echofp/echofp/internal/config"
)

// Spectrogram is a dB-scaled magnitude spectrogram. Frames holds one
// slice per time frame, each of length NFFT/2+1 frequency bins,
// ordered low to high frequency and clamped to [-80, 0] dB relative to
// the signal's own peak.
type Spectrogram struct {
	Frames   [][]float64
	NumBins  int
	HopSize  int
	Config   config.Config
}

const minDB = -80.0

// Compute runs a centered STFT over samples and converts it to a
// max-normalized dB scale, mirroring librosa.stft followed by
// amplitude_to_db(ref=np.max).
func Compute(samples []float64, cfg config.Config) (*Spectrogram, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("dsp: samples must not be empty")
	}
	nfft := cfg.NFFT
	hop := cfg.Hop()

	padded := reflectPadCenter(samples, nfft/2)
	window := Hann(nfft)

	numFrames := (len(samples) + hop - 1) / hop
	numBins := nfft/2 + 1

	mags := make([][]float64, numFrames)
	peak := 0.0
	for t := 0; t < numFrames; t++ {
		start := t * hop
		frame := make([]float64, nfft)
		for i := 0; i < nfft; i++ {
			if start+i < len(padded) {
				frame[i] = padded[start+i] * window[i]
			}
		}
		spec := fft.FFTReal(frame)
		mag := make([]float64, numBins)
		for k := 0; k < numBins; k++ {
			re := real(spec[k])
			im := imag(spec[k])
			m := math.Sqrt(re*re + im*im)
			mag[k] = m
			if m > peak {
				peak = m
			}
		}
		mags[t] = mag
	}

	if peak == 0 {
		peak = 1e-12
	}
	frames := make([][]float64, numFrames)
	for t := range mags {
		row := make([]float64, numBins)
		for k, m := range mags[t] {
			db := minDB
			if m > 0 {
				db = 20 * math.Log10(m/peak)
				if db < minDB {
					db = minDB
				}
			}
			row[k] = db
		}
		frames[t] = row
	}

	return &Spectrogram{Frames: frames, NumBins: numBins, HopSize: hop, Config: cfg}, nil
}

// NumFrames returns the number of time frames in the spectrogram.
func (s *Spectrogram) NumFrames() int {
	return len(s.Frames)
}
