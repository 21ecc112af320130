// Package index implements the reverse hash lookup table: fingerprint
// hash -> every (song, anchor frame) that produced it. It is the one
// structure a Matcher queries, and the one structure a snapshot
// serializes.
package index

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"
)

// Entry is one posting in the reverse index: which song a hash
// occurred in, and at which anchor frame.
type Entry struct {
	SongID      string
	AnchorFrame int
}

// snapshotVersion is bumped whenever the gob-encoded envelope's shape
// changes, so Restore can reject snapshots it can no longer decode
// faithfully instead of silently misreading them.
const snapshotVersion = 1

// Index is a thread-safe reverse hash index: map[hash][]Entry guarded
// by a RWMutex, so concurrent Recognize calls (readers) never block
// each other, only Add (a writer).
type Index struct {
	mu      sync.RWMutex
	buckets map[uint64][]Entry
	songIDs map[string]int // songID -> fingerprint count, for Stats
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		buckets: make(map[uint64][]Entry),
		songIDs: make(map[string]int),
	}
}

// Insert adds one posting for hash. Safe for concurrent use with
// Lookup and Stats; mutually exclusive with other Insert/Restore calls.
func (idx *Index) Insert(hash uint64, songID string, anchorFrame int) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.buckets[hash] = append(idx.buckets[hash], Entry{SongID: songID, AnchorFrame: anchorFrame})
	idx.songIDs[songID]++
}

// InsertBatch adds every posting produced for one song's fingerprints
// in a single locked section, so a Recognize running concurrently
// either sees none of the song's postings or all of them.
func (idx *Index) InsertBatch(songID string, hashes []uint64, anchorFrames []int) error {
	if len(hashes) != len(anchorFrames) {
		return fmt.Errorf("index: hashes and anchorFrames length mismatch (%d != %d)", len(hashes), len(anchorFrames))
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for i, h := range hashes {
		idx.buckets[h] = append(idx.buckets[h], Entry{SongID: songID, AnchorFrame: anchorFrames[i]})
	}
	idx.songIDs[songID] += len(hashes)
	return nil
}

// Lookup returns every posting stored under hash. The returned slice
// must not be mutated by the caller; it aliases index storage.
func (idx *Index) Lookup(hash uint64) []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.buckets[hash]
}

// DeleteSong removes every posting belonging to songID. O(total
// postings); acceptable because deletion is a rare administrative
// operation, not a hot path.
func (idx *Index) DeleteSong(songID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for hash, entries := range idx.buckets {
		kept := entries[:0]
		for _, e := range entries {
			if e.SongID != songID {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(idx.buckets, hash)
		} else {
			idx.buckets[hash] = kept
		}
	}
	delete(idx.songIDs, songID)
}

// Stats reports the number of distinct hash keys, total postings, and
// fingerprint count for one song (0 if unknown).
type Stats struct {
	DistinctHashes int
	TotalPostings  int
	SongCount      int
}

// Stats returns index-wide statistics plus, when songID is non-empty,
// that song's fingerprint count.
func (idx *Index) Stats(songID string) Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	s := Stats{DistinctHashes: len(idx.buckets)}
	for _, entries := range idx.buckets {
		s.TotalPostings += len(entries)
	}
	if songID != "" {
		s.SongCount = idx.songIDs[songID]
	}
	return s
}

// envelope is the versioned container gob-encodes to and decodes
// from, so Restore can check version compatibility before trusting the
// payload.
type envelope struct {
	Version int
	Buckets map[uint64][]Entry
	SongIDs map[string]int
}

// Snapshot encodes the entire index as an opaque byte blob suitable
// for Restore. Within-bucket order is insertion order, but gob encodes
// the bucket and song maps in Go's map iteration order, so two
// snapshots of the same index are not byte-for-byte identical.
func (idx *Index) Snapshot() ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	env := envelope{Version: snapshotVersion, Buckets: idx.buckets, SongIDs: idx.songIDs}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("index: encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// ErrIncompatibleSnapshot is returned by Restore when data was encoded
// by an incompatible snapshot format version.
type ErrIncompatibleSnapshot struct {
	Got, Want int
}

func (e *ErrIncompatibleSnapshot) Error() string {
	return fmt.Sprintf("index: snapshot version %d is incompatible with reader version %d", e.Got, e.Want)
}

// Restore replaces the index's contents with a previously captured
// Snapshot. The index is locked for the duration, so concurrent
// Lookups will block rather than observe a partially restored state.
func (idx *Index) Restore(data []byte) error {
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return fmt.Errorf("index: decode snapshot: %w", err)
	}
	if env.Version != snapshotVersion {
		return &ErrIncompatibleSnapshot{Got: env.Version, Want: snapshotVersion}
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if env.Buckets == nil {
		env.Buckets = make(map[uint64][]Entry)
	}
	if env.SongIDs == nil {
		env.SongIDs = make(map[string]int)
	}
	idx.buckets = env.Buckets
	idx.songIDs = env.SongIDs
	return nil
}
