// Package fingerprint turns a sorted constellation of peaks into the
// anchor/target hash pairs stored in and queried against the index.
package fingerprint

import (
	"sort"

	"github.com/echofp/echofp/internal/config"
	"github.com/echofp/echofp/internal/peaks"
)

// Fingerprint is one anchor/target pair: Hash is the packed lookup
// key, AnchorFrame is the anchor's time frame (used to compute the
// offset vote during matching).
type Fingerprint struct {
	Hash        uint64
	AnchorFrame int
}

// Generate builds the set of anchor/target fingerprints for a peak
// constellation. Peaks are processed in ascending time order; for each
// anchor, up to cfg.FanOut subsequent peaks within
// [cfg.DeltaTMin, cfg.DeltaTMax()] frames are paired with it, in
// ascending time order of the target peak (nearest targets first).
func Generate(pks []peaks.Peak, cfg config.Config) []Fingerprint {
	sorted := make([]peaks.Peak, len(pks))
	copy(sorted, pks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TimeIdx != sorted[j].TimeIdx {
			return sorted[i].TimeIdx < sorted[j].TimeIdx
		}
		return sorted[i].FreqIdx < sorted[j].FreqIdx
	})

	dtMin := cfg.DeltaTMin
	dtMax := cfg.DeltaTMax()

	fps := make([]Fingerprint, 0, len(sorted)*cfg.FanOut)
	for i, anchor := range sorted {
		paired := 0
		for j := i + 1; j < len(sorted) && paired < cfg.FanOut; j++ {
			target := sorted[j]
			dt := target.TimeIdx - anchor.TimeIdx
			if dt < dtMin {
				continue
			}
			if dt > dtMax {
				break // sorted by time: no later target can satisfy dt either
			}
			hash, ok := packHash(anchor.FreqIdx, target.FreqIdx, dt)
			if !ok {
				continue
			}
			fps = append(fps, Fingerprint{Hash: hash, AnchorFrame: anchor.TimeIdx})
			paired++
		}
	}
	return fps
}
