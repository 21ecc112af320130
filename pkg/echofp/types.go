package echofp

import "github.com/echofp/echofp/internal/result"

// AddResult is returned by Service.Add.
type AddResult struct {
	Added     bool
	RID       string
	FPCount   int
}

// MatchResult is returned by Service.Recognize. It mirrors
// internal/result.Result with the facade's recording-ID vocabulary.
type MatchResult struct {
	Matched    bool
	RID        string
	Confidence result.Confidence
	RawScore   int
	OffsetMS   int
	Position   string // M:SS formatted offset
	Message    string // set on non-match outcomes, e.g. "empty input"
}

// RecordingInfo describes one indexed recording, returned by List.
type RecordingInfo struct {
	RID               string
	FingerprintCount  int
	DurationSeconds   float64
}

// ListResult is returned by Service.List.
type ListResult struct {
	Recordings []RecordingInfo
	Totals     Totals
}

// Totals summarizes the whole index.
type Totals struct {
	RecordingCount int
	FingerprintCount int
}
