// Package config defines the tunable parameters shared by every stage of
// the fingerprinting pipeline (spectrogram, peak picking, fingerprint
// generation) and validates them on load.
package config

import "fmt"

// Config controls the spectral analysis and fingerprinting pipeline.
// Changing any field invalidates existing snapshots: fingerprints
// produced under one Config will not match fingerprints produced
// under another.
type Config struct {
	SampleRate          int     // SR, Hz
	NFFT                int     // FFT window size in samples, power of 2
	HopRatio            int     // hop = NFFT / HopRatio
	FreqNeighborhood    int     // peak-picking max-filter width, frequency bins
	TimeNeighborhood    int     // peak-picking max-filter width, time frames
	AmplitudeThreshold  float64 // dB, relative to per-signal peak
	NumBands            int     // frequency bands for banded peak picking
	FanOut              int     // max fingerprints emitted per anchor
	DeltaTMin           int     // min anchor-target gap, frames
	DeltaTMaxSeconds    float64 // max anchor-target gap, seconds
}

// Default returns the configuration used throughout spec.md §6.
func Default() Config {
	return Config{
		SampleRate:         44100,
		NFFT:               2048,
		HopRatio:           4,
		FreqNeighborhood:   20,
		TimeNeighborhood:   20,
		AmplitudeThreshold: -35,
		NumBands:           6,
		FanOut:             10,
		DeltaTMin:          2,
		DeltaTMaxSeconds:   2.0,
	}
}

// Hop returns NFFT / HopRatio, the STFT hop size in samples.
func (c Config) Hop() int {
	return c.NFFT / c.HopRatio
}

// DeltaTMax returns the maximum anchor-target gap in frames.
func (c Config) DeltaTMax() int {
	return int(c.DeltaTMaxSeconds * float64(c.SampleRate) / float64(c.Hop()))
}

// Validate checks every constraint in spec.md §6's configuration table.
// It returns a plain error; callers in pkg/echofp wrap it into the
// facade's config error kind, so this package stays free of the
// facade's error taxonomy.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("sr must be > 0, got %d", c.SampleRate)
	case c.NFFT <= 0 || c.NFFT&(c.NFFT-1) != 0:
		return fmt.Errorf("n_fft must be a positive power of 2, got %d", c.NFFT)
	case c.HopRatio <= 0:
		return fmt.Errorf("hop_ratio must be > 0, got %d", c.HopRatio)
	case c.NFFT%c.HopRatio != 0:
		return fmt.Errorf("hop_ratio must divide n_fft: %d does not divide %d", c.HopRatio, c.NFFT)
	case c.FreqNeighborhood < 1:
		return fmt.Errorf("freq_neighborhood must be >= 1, got %d", c.FreqNeighborhood)
	case c.TimeNeighborhood < 1:
		return fmt.Errorf("time_neighborhood must be >= 1, got %d", c.TimeNeighborhood)
	case c.NumBands < 1 || c.NumBands > c.NFFT/2:
		return fmt.Errorf("num_bands must be in [1, n_fft/2], got %d", c.NumBands)
	case c.FanOut < 1:
		return fmt.Errorf("fanout must be >= 1, got %d", c.FanOut)
	case c.DeltaTMin < 0:
		return fmt.Errorf("dt_min must be >= 0, got %d", c.DeltaTMin)
	case c.DeltaTMaxSeconds <= 0:
		return fmt.Errorf("dt_max_seconds must be > 0, got %f", c.DeltaTMaxSeconds)
	}
	return nil
}

// Equal reports whether two configs produce bit-identical fingerprints.
// Used by snapshot restore to reject a config mismatch (spec.md §7/§8).
func (c Config) Equal(other Config) bool {
	return c == other
}
