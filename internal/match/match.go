// Package match scores a query's fingerprints against a HashIndex by
// offset-histogram voting: each matching posting casts one vote for
// (songID, offset), and the song/offset pair with the most votes wins.
package match

import (
	"sort"

	"github.com/echofp/echofp/internal/fingerprint"
	"github.com/echofp/echofp/internal/index"
)

// Vote is one song's winning offset and the number of fingerprints
// that agreed on it.
type Vote struct {
	SongID string
	Offset int
	Count  int
}

// key identifies one (song, offset) voting bucket.
type key struct {
	songID string
	offset int
}

// Run scores queryFPs against idx in a single streaming pass and
// returns every song's best-scoring offset, most-voted first. Ties in
// vote count are broken by which (song, offset) bucket received its
// first vote earliest, so results are deterministic regardless of Go's
// randomized map iteration order.
func Run(queryFPs []fingerprint.Fingerprint, idx *index.Index) []Vote {
	counts := make(map[key]int)
	firstSeen := make(map[key]int)
	var order []key
	seq := 0

	for _, qfp := range queryFPs {
		for _, entry := range idx.Lookup(qfp.Hash) {
			offset := entry.AnchorFrame - qfp.AnchorFrame
			k := key{songID: entry.SongID, offset: offset}
			if _, ok := counts[k]; !ok {
				firstSeen[k] = seq
				order = append(order, k)
			}
			counts[k]++
			seq++
		}
	}

	// Reduce to each song's best offset only.
	bestBySong := make(map[string]key)
	for _, k := range order {
		cur, ok := bestBySong[k.songID]
		if !ok {
			bestBySong[k.songID] = k
			continue
		}
		if counts[k] > counts[cur] || (counts[k] == counts[cur] && firstSeen[k] < firstSeen[cur]) {
			bestBySong[k.songID] = k
		}
	}

	votes := make([]Vote, 0, len(bestBySong))
	for songID, k := range bestBySong {
		votes = append(votes, Vote{SongID: songID, Offset: k.offset, Count: counts[k]})
	}

	sortVotes(votes, firstSeen, bestBySong)
	return votes
}

// sortVotes orders votes by descending count, breaking ties by which
// song's winning bucket was first observed.
func sortVotes(votes []Vote, firstSeen map[key]int, bestBySong map[string]key) {
	sort.SliceStable(votes, func(i, j int) bool {
		if votes[i].Count != votes[j].Count {
			return votes[i].Count > votes[j].Count
		}
		ki := key{votes[i].SongID, votes[i].Offset}
		kj := key{votes[j].SongID, votes[j].Offset}
		return firstSeen[ki] < firstSeen[kj]
	})
}
