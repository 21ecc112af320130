// Package result turns a raw vote into the final, human-facing
// recognition outcome: a confidence label and an M:SS offset string.
package result

import (
	"fmt"

	"github.com/echofp/echofp/internal/config"
	"github.com/echofp/echofp/internal/match"
)

// Confidence labels the strength of a match, per the vote-count bands
// below.
type Confidence string

const (
	NoMatch  Confidence = "no_match"
	Low      Confidence = "low"
	Medium   Confidence = "medium"
	High     Confidence = "high"
)

// confidenceLabel buckets a raw vote count into a Confidence, using
// the thresholds: <200 no match, [200,1000) low, [1000,3000) medium,
// >=3000 high.
func confidenceLabel(count int) Confidence {
	switch {
	case count < 200:
		return NoMatch
	case count < 1000:
		return Low
	case count < 3000:
		return Medium
	default:
		return High
	}
}

// Result is the final shape returned to a Recognize caller.
type Result struct {
	Matched    bool
	SongID     string
	Confidence Confidence
	VoteCount  int
	OffsetMS   int
	OffsetMMSS string
}

// Interpret converts the top vote (if any) into a Result. An empty or
// sub-threshold vote list yields Matched=false.
func Interpret(votes []match.Vote, cfg config.Config) Result {
	if len(votes) == 0 {
		return Result{Matched: false, Confidence: NoMatch}
	}
	top := votes[0]
	label := confidenceLabel(top.Count)
	if label == NoMatch {
		return Result{Matched: false, Confidence: NoMatch, VoteCount: top.Count}
	}

	offsetMs := frameOffsetToMillis(top.Offset, cfg)
	return Result{
		Matched:    true,
		SongID:     top.SongID,
		Confidence: label,
		VoteCount:  top.Count,
		OffsetMS:   offsetMs,
		OffsetMMSS: millisToMMSS(offsetMs),
	}
}

// frameOffsetToMillis converts a frame-domain offset to milliseconds
// using the configured sample rate and hop size.
func frameOffsetToMillis(offsetFrames int, cfg config.Config) int {
	hop := cfg.Hop()
	return offsetFrames * hop * 1000 / cfg.SampleRate
}

// millisToMMSS formats a millisecond offset as M:SS, magnitude only —
// the sign is discarded in the label.
func millisToMMSS(ms int) string {
	if ms < 0 {
		ms = -ms
	}
	totalSeconds := ms / 1000
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
