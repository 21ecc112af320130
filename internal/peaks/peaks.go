// Package peaks selects constellation points from a dB spectrogram:
// local maxima over a 2D neighborhood, gated by an amplitude threshold
// in dB relative to the spectrogram's own peak, and spread across equal-width frequency bands so energy
// concentrated in one band cannot starve the others.
package peaks

import (
	"sort"

	"github.com/echofp/echofp/internal/config"
)

// Peak is a single constellation point.
type Peak struct {
	TimeIdx int
	FreqIdx int
	MagDB   float64
}

// Extract returns every (t, f) bin whose value equals the maximum over
// its 2*TimeNeighborhood+1 by 2*FreqNeighborhood+1 neighborhood (so
// every bin of a tied plateau is returned, not just one), is at
// or above AmplitudeThreshold dB, and falls within one of NumBands
// equal-width frequency bands. Results are sorted by (TimeIdx, FreqIdx).
func Extract(frames [][]float64, cfg config.Config) []Peak {
	nFrames := len(frames)
	if nFrames == 0 || len(frames[0]) == 0 {
		return nil
	}
	nBins := len(frames[0])

	bandEdges := bandBoundaries(nBins, cfg.NumBands)
	filtered := maxFilter2D(frames, cfg.TimeNeighborhood, cfg.FreqNeighborhood, bandEdges)

	peaks := make([]Peak, 0, nFrames)
	for t := 0; t < nFrames; t++ {
		for _, edge := range bandEdges {
			lo, hi := edge[0], edge[1]
			if lo >= hi {
				continue
			}
			for f := lo; f < hi; f++ {
				mag := frames[t][f]
				if mag < cfg.AmplitudeThreshold {
					continue
				}
				// Local max: the bin equals the filtered max of its
				// neighborhood. Ties are not broken; every bin that
				// attains the max is kept.
				if mag < filtered[t][f] {
					continue
				}
				peaks = append(peaks, Peak{TimeIdx: t, FreqIdx: f, MagDB: mag})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].TimeIdx != peaks[j].TimeIdx {
			return peaks[i].TimeIdx < peaks[j].TimeIdx
		}
		return peaks[i].FreqIdx < peaks[j].FreqIdx
	})
	return dedupe(peaks)
}

// bandBoundaries splits [0, nBins) into numBands contiguous half-open
// ranges of nBins/numBands bins each, with the last band absorbing
// whatever remainder doesn't divide evenly.
func bandBoundaries(nBins, numBands int) [][2]int {
	if numBands < 1 {
		numBands = 1
	}
	edges := make([][2]int, numBands)
	width := nBins / numBands
	start := 0
	for i := 0; i < numBands; i++ {
		w := width
		if i == numBands-1 {
			w = nBins - start
		}
		edges[i] = [2]int{start, start + w}
		start += w
	}
	return edges
}

// dedupe removes duplicate (TimeIdx, FreqIdx) pairs. Bands are disjoint,
// so Extract visits each bin once and produces none; this is a guard
// only. The list is already sorted by (TimeIdx, FreqIdx) on entry.
func dedupe(peaks []Peak) []Peak {
	if len(peaks) < 2 {
		return peaks
	}
	out := peaks[:1]
	for _, p := range peaks[1:] {
		last := out[len(out)-1]
		if p.TimeIdx == last.TimeIdx && p.FreqIdx == last.FreqIdx {
			continue
		}
		out = append(out, p)
	}
	return out
}
