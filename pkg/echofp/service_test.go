package echofp

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echofp/echofp/internal/config"
)

func testPipelineConfig() config.Config {
	return config.Config{
		SampleRate:         8000,
		NFFT:               256,
		HopRatio:           4,
		FreqNeighborhood:   5,
		TimeNeighborhood:   5,
		AmplitudeThreshold: -40,
		NumBands:           4,
		FanOut:             8,
		DeltaTMin:          1,
		DeltaTMaxSeconds:   1.0,
	}
}

// multiTone builds a signal rich enough in distinct spectral peaks to
// fingerprint reliably, unlike a single sine tone which only energizes
// one narrow band.
func multiTone(sr, n int, freqs []float64) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		v := 0.0
		for _, f := range freqs {
			v += math.Sin(2 * math.Pi * f * float64(i) / float64(sr))
		}
		samples[i] = v / float64(len(freqs))
	}
	return samples
}

func newTestService(t *testing.T, opts ...Option) Service {
	t.Helper()
	base := []Option{WithPipelineConfig(testPipelineConfig())}
	svc, err := NewService(append(base, opts...)...)
	require.NoError(t, err)
	return svc
}

func TestAddAndRecognizeSelfIdentification(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	defer svc.Close()

	sr := testPipelineConfig().SampleRate
	samples := multiTone(sr, 3*sr, []float64{300, 800, 1500, 2500})

	added, err := svc.Add(ctx, "songA", samples, sr)
	require.NoError(t, err)
	assert.True(t, added.Added)
	assert.Greater(t, added.FPCount, 0)

	result, err := svc.Recognize(ctx, samples, sr)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "songA", result.RID)
	assert.InDelta(t, 0, result.OffsetMS, 50)
}

func TestRecognizeSubClipReportsCorrectOffset(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	defer svc.Close()

	sr := testPipelineConfig().SampleRate
	samples := multiTone(sr, 5*sr, []float64{300, 800, 1500, 2500})

	_, err := svc.Add(ctx, "songA", samples, sr)
	require.NoError(t, err)

	startSec := 2
	clip := samples[startSec*sr : (startSec+2)*sr]
	result, err := svc.Recognize(ctx, clip, sr)
	require.NoError(t, err)
	require.True(t, result.Matched)
	assert.Equal(t, "songA", result.RID)
	assert.InDelta(t, startSec*1000, result.OffsetMS, 100)
}

func TestRecognizeUnknownAudioIsNoMatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	defer svc.Close()

	sr := testPipelineConfig().SampleRate
	known := multiTone(sr, 3*sr, []float64{300, 800, 1500})
	_, err := svc.Add(ctx, "songA", known, sr)
	require.NoError(t, err)

	unknown := multiTone(sr, 3*sr, []float64{4000})
	result, err := svc.Recognize(ctx, unknown, sr)
	require.NoError(t, err)
	assert.False(t, result.Matched)
}

func TestAddRejectsDuplicateRID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	defer svc.Close()

	sr := testPipelineConfig().SampleRate
	samples := multiTone(sr, sr, []float64{440})

	_, err := svc.Add(ctx, "songA", samples, sr)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "songA", samples, sr)
	require.Error(t, err)
	assert.Equal(t, KindAlreadyExists, KindOf(err))
}

func TestDeleteRecordingRejectsUnknownRID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	defer svc.Close()

	err := svc.DeleteRecording(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	defer svc.Close()

	sr := testPipelineConfig().SampleRate
	samples := multiTone(sr, 2*sr, []float64{300, 900, 2000})
	_, err := svc.Add(ctx, "songA", samples, sr)
	require.NoError(t, err)

	data, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	restored := newTestService(t)
	defer restored.Close()
	require.NoError(t, restored.Restore(ctx, data))

	result, err := restored.Recognize(ctx, samples, sr)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "songA", result.RID)
}

func TestRestoreRejectsConfigMismatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	defer svc.Close()

	data, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	mismatched := testPipelineConfig()
	mismatched.NFFT = 512
	other := newTestService(t, WithPipelineConfig(mismatched))
	defer other.Close()

	err = other.Restore(ctx, data)
	require.Error(t, err)
	assert.Equal(t, KindSnapshotIncompatible, KindOf(err))
}

func TestRecognizeEmptyInputIsNoMatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	defer svc.Close()

	result, err := svc.Recognize(ctx, nil, 8000)
	require.NoError(t, err)
	assert.False(t, result.Matched)
}

func TestListReportsAddedRecordings(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	defer svc.Close()

	sr := testPipelineConfig().SampleRate
	samples := multiTone(sr, sr, []float64{440, 880})
	_, err := svc.Add(ctx, "songA", samples, sr)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Totals.RecordingCount)
	require.Len(t, list.Recordings, 1)
	assert.Equal(t, "songA", list.Recordings[0].RID)
}
