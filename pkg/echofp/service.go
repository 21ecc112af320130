package echofp

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/echofp/echofp/internal/dsp"
	"github.com/echofp/echofp/internal/fingerprint"
	"github.com/echofp/echofp/internal/index"
	"github.com/echofp/echofp/internal/match"
	"github.com/echofp/echofp/internal/peaks"
	"github.com/echofp/echofp/internal/result"
)

type service struct {
	mu      sync.RWMutex // writes (add, restore, delete) exclusive; queries shared
	idx     *index.Index
	durMs   map[string]int // rid -> duration in ms, for List
	log     Logger
	cfg     *Config
}

// NewService constructs a Service, validating the pipeline config and
// attempting to restore from cfg.SnapshotPath if one was supplied and
// the file exists. A missing snapshot file is not an error.
func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Pipeline.Validate(); err != nil {
		return nil, configError("invalid pipeline configuration", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = &noopLogger{}
	}

	s := &service{
		idx:   index.New(),
		durMs: make(map[string]int),
		log:   cfg.Logger,
		cfg:   cfg,
	}

	if cfg.SnapshotPath != "" {
		data, err := os.ReadFile(cfg.SnapshotPath)
		if err == nil {
			if restoreErr := s.restoreLocked(data); restoreErr != nil {
				s.log.Warnf("ignoring incompatible snapshot at %s: %v", cfg.SnapshotPath, restoreErr)
			}
		} else if !os.IsNotExist(err) {
			return nil, internalError("failed to read snapshot file", err)
		}
	}

	return s, nil
}

// analyze runs the Spectrogram -> PeakPicker -> Fingerprinter pipeline
// (spec.md §4.1-4.3) over one buffer of samples.
func (s *service) analyze(samples []float64) ([]fingerprint.Fingerprint, error) {
	if len(samples) == 0 {
		return nil, nil
	}
	spec, err := dsp.Compute(samples, s.cfg.Pipeline)
	if err != nil {
		return nil, internalError("spectrogram computation failed", err)
	}
	pks := peaks.Extract(spec.Frames, s.cfg.Pipeline)
	fps := fingerprint.Generate(pks, s.cfg.Pipeline)
	return fps, nil
}

func (s *service) Add(ctx context.Context, rid string, samples []float64, sr int) (AddResult, error) {
	if len(samples) == 0 {
		return AddResult{Added: false, RID: rid, FPCount: 0}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.durMs[rid]; exists {
		return AddResult{}, alreadyExistsError(rid)
	}

	fps, err := s.analyze(samples)
	if err != nil {
		return AddResult{}, err
	}

	hashes := make([]uint64, len(fps))
	frames := make([]int, len(fps))
	for i, fp := range fps {
		hashes[i] = fp.Hash
		frames[i] = fp.AnchorFrame
	}
	if err := s.idx.InsertBatch(rid, hashes, frames); err != nil {
		return AddResult{}, internalError("failed to insert fingerprints", err)
	}

	durationMs := int(float64(len(samples)) / float64(sr) * 1000)
	s.durMs[rid] = durationMs

	s.log.Infof("added recording %q: %d fingerprints", rid, len(fps))
	return AddResult{Added: true, RID: rid, FPCount: len(fps)}, nil
}

func (s *service) Recognize(ctx context.Context, samples []float64, sr int) (MatchResult, error) {
	if len(samples) == 0 {
		return MatchResult{Matched: false, Message: "empty input"}, nil
	}

	fps, err := s.analyze(samples)
	if err != nil {
		return MatchResult{}, err
	}
	if len(fps) == 0 {
		return MatchResult{Matched: false, Message: "empty input"}, nil
	}

	s.mu.RLock()
	votes := match.Run(fps, s.idx)
	s.mu.RUnlock()
	r := result.Interpret(votes, s.cfg.Pipeline)

	mr := MatchResult{
		Matched:    r.Matched,
		RID:        r.SongID,
		Confidence: r.Confidence,
		RawScore:   r.VoteCount,
		OffsetMS:   r.OffsetMS,
		Position:   r.OffsetMMSS,
	}
	if !mr.Matched {
		mr.Message = "no match"
	}
	return mr, nil
}

func (s *service) RecognizeHashes(ctx context.Context, anchors map[uint64]int) (MatchResult, error) {
	if len(anchors) == 0 {
		return MatchResult{Matched: false, Message: "empty input"}, nil
	}

	fps := make([]fingerprint.Fingerprint, 0, len(anchors))
	for hash, frame := range anchors {
		fps = append(fps, fingerprint.Fingerprint{Hash: hash, AnchorFrame: frame})
	}

	s.mu.RLock()
	votes := match.Run(fps, s.idx)
	s.mu.RUnlock()
	r := result.Interpret(votes, s.cfg.Pipeline)

	mr := MatchResult{
		Matched:    r.Matched,
		RID:        r.SongID,
		Confidence: r.Confidence,
		RawScore:   r.VoteCount,
		OffsetMS:   r.OffsetMS,
		Position:   r.OffsetMMSS,
	}
	if !mr.Matched {
		mr.Message = "no match"
	}
	return mr, nil
}

func (s *service) List(ctx context.Context) (ListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make([]RecordingInfo, 0, len(s.durMs))
	totalFP := 0
	for rid, ms := range s.durMs {
		stats := s.idx.Stats(rid)
		recs = append(recs, RecordingInfo{
			RID:              rid,
			FingerprintCount: stats.SongCount,
			DurationSeconds:  float64(ms) / 1000,
		})
		totalFP += stats.SongCount
	}
	return ListResult{
		Recordings: recs,
		Totals: Totals{
			RecordingCount:   len(recs),
			FingerprintCount: totalFP,
		},
	}, nil
}

func (s *service) DeleteRecording(ctx context.Context, rid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.durMs[rid]; !exists {
		return notFoundError(rid)
	}
	s.idx.DeleteSong(rid)
	delete(s.durMs, rid)

	if s.cfg.Catalog != nil {
		if err := s.cfg.Catalog.DeleteRecording(rid); err != nil {
			s.log.Warnf("catalog delete failed for %q: %v", rid, err)
		}
	}
	return nil
}

func (s *service) Snapshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *service) snapshotLocked() ([]byte, error) {
	env := snapshotEnvelope{
		Config: s.cfg.Pipeline,
		DurMs:  s.durMs,
	}
	idxData, err := s.idx.Snapshot()
	if err != nil {
		return nil, internalError("failed to snapshot index", err)
	}
	env.IndexData = idxData

	data, err := encodeSnapshotEnvelope(env)
	if err != nil {
		return nil, internalError("failed to encode snapshot", err)
	}
	return data, nil
}

func (s *service) Restore(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restoreLocked(data)
}

func (s *service) restoreLocked(data []byte) error {
	env, err := decodeSnapshotEnvelope(data)
	if err != nil {
		return snapshotIncompatibleError("failed to decode snapshot envelope", err)
	}
	if !env.Config.Equal(s.cfg.Pipeline) {
		return snapshotIncompatibleError("snapshot config does not match this service's pipeline config", nil)
	}

	newIdx := index.New()
	if err := newIdx.Restore(env.IndexData); err != nil {
		return snapshotIncompatibleError("failed to restore index", err)
	}

	s.idx = newIdx
	s.durMs = env.DurMs
	if s.durMs == nil {
		s.durMs = make(map[string]int)
	}
	return nil
}

// Close persists the index to SnapshotPath (if configured, using
// write-temp-then-rename to keep a prior snapshot intact on failure)
// and closes the catalog, if any.
func (s *service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.SnapshotPath != "" {
		data, err := s.snapshotLocked()
		if err != nil {
			return err
		}
		if err := writeFileAtomic(s.cfg.SnapshotPath, data); err != nil {
			return internalError("failed to persist snapshot on close", err)
		}
	}
	if s.cfg.Catalog != nil {
		return s.cfg.Catalog.Close()
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the same directory as
// path, then renames it into place, so a crash mid-write never leaves
// path corrupted or truncated.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// noopLogger discards everything; used only if a caller explicitly
// passes WithLogger(nil).
type noopLogger struct{}

func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}
func (noopLogger) Debugf(string, ...any) {}
