package result

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/echofp/echofp/internal/config"
	"github.com/echofp/echofp/internal/match"
)

func TestConfidenceLabelThresholds(t *testing.T) {
	cases := []struct {
		count int
		want  Confidence
	}{
		{0, NoMatch},
		{199, NoMatch},
		{200, Low},
		{999, Low},
		{1000, Medium},
		{2999, Medium},
		{3000, High},
		{10000, High},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, confidenceLabel(c.count))
	}
}

func TestInterpretNoVotesIsNoMatch(t *testing.T) {
	r := Interpret(nil, config.Default())
	assert.False(t, r.Matched)
	assert.Equal(t, NoMatch, r.Confidence)
}

func TestInterpretBelowThresholdIsNoMatch(t *testing.T) {
	votes := []match.Vote{{SongID: "songA", Offset: 10, Count: 50}}
	r := Interpret(votes, config.Default())
	assert.False(t, r.Matched)
	assert.Equal(t, NoMatch, r.Confidence)
}

func TestInterpretAboveThresholdReturnsOffsetAndPosition(t *testing.T) {
	cfg := config.Default()
	votes := []match.Vote{{SongID: "songA", Offset: 500, Count: 1500}}
	r := Interpret(votes, cfg)

	assert.True(t, r.Matched)
	assert.Equal(t, "songA", r.SongID)
	assert.Equal(t, Medium, r.Confidence)
	assert.Equal(t, 1500, r.VoteCount)
	assert.Equal(t, frameOffsetToMillis(500, cfg), r.OffsetMS)
}

func TestMillisToMMSSDiscardsSign(t *testing.T) {
	assert.Equal(t, "1:05", millisToMMSS(65000))
	assert.Equal(t, "1:05", millisToMMSS(-65000))
	assert.Equal(t, "0:00", millisToMMSS(0))
}
