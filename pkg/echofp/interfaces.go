package echofp

import "context"

// Service is the core fingerprinting facade: ingest, recognition, and
// catalog listing over a single in-process index.
type Service interface {
	// Add computes fingerprints for samples (mono, at sr Hz) and
	// inserts them under rid. Returns KindAlreadyExists if rid is
	// already indexed.
	Add(ctx context.Context, rid string, samples []float64, sr int) (AddResult, error)

	// Recognize fingerprints samples and returns the best match, if
	// any, against the current index.
	Recognize(ctx context.Context, samples []float64, sr int) (MatchResult, error)

	// RecognizeHashes scores a caller-computed set of fingerprint
	// hashes (packed hash -> anchor frame) against the current index,
	// for clients (e.g. the WASM build) that fingerprint locally and
	// only want the index lookup done server-side.
	RecognizeHashes(ctx context.Context, anchors map[uint64]int) (MatchResult, error)

	// List returns every indexed recording and index-wide totals.
	List(ctx context.Context) (ListResult, error)

	// DeleteRecording removes rid and all of its fingerprints from the
	// index and, if configured, the metadata catalog.
	DeleteRecording(ctx context.Context, rid string) error

	// Snapshot serializes the full index to an opaque byte blob.
	Snapshot(ctx context.Context) ([]byte, error)

	// Restore replaces the index with the contents of a prior
	// Snapshot. Returns KindSnapshotIncompatible if the blob's version
	// or config does not match this Service's.
	Restore(ctx context.Context, data []byte) error

	// Close releases any resources held by the service (catalog
	// database connections, etc).
	Close() error
}

// Logger is the structured logging interface the facade writes to.
// Satisfied by *pkg/logger.Logger; accepting the interface rather than
// the concrete type lets callers supply their own.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

// Catalog is the optional side-store for human-facing recording
// metadata (title, artist, source URL). It is independent of the
// in-memory HashIndex that recognition actually queries: a Service can
// run with Catalog == nil and still recognize and list by RID alone.
type Catalog interface {
	RegisterRecording(rid, title, artist, sourceURL string, durationMs int) error
	GetRecording(rid string) (title, artist, sourceURL string, durationMs int, err error)
	DeleteRecording(rid string) error
	ListRecordings() ([]CatalogEntry, error)
	Close() error
}

// CatalogEntry is one row of human-facing metadata about an indexed
// recording.
type CatalogEntry struct {
	RID        string
	Title      string
	Artist     string
	SourceURL  string
	DurationMs int
}
