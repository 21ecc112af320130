package audio

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFixture(t *testing.T) string {
	path := filepath.Join("..", "..", "test", "convertedtestdata", "Sandstorm-Darude.wav")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("fixture not present: %s", path)
	}
	return path
}

func openFixture(t *testing.T) *decoder {
	t.Helper()
	f, err := os.Open(testFixture(t))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return &decoder{r: bufio.NewReader(f)}
}

func TestDecoderReadRIFFHeaderAcceptsValidFile(t *testing.T) {
	d := openFixture(t)
	assert.NoError(t, d.readRIFFHeader())
}

func TestDecoderReadRIFFHeaderRejectsGarbage(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "invalid-*.wav")
	require.NoError(t, err)
	_, err = tmp.Write([]byte("NOT A RIFF FILE AT ALL!"))
	require.NoError(t, err)
	_, err = tmp.Seek(0, 0)
	require.NoError(t, err)

	d := &decoder{r: bufio.NewReader(tmp)}
	assert.Error(t, d.readRIFFHeader())
}

func TestDecoderReadChunksFindsFormatAndData(t *testing.T) {
	d := openFixture(t)
	require.NoError(t, d.readRIFFHeader())

	format, pcm, err := d.readChunks()
	require.NoError(t, err)
	assert.EqualValues(t, pcmFormatTag, format.Tag)
	assert.NotZero(t, format.SampleRate)
	assert.NotZero(t, format.Channels)
	assert.NotEmpty(t, pcm)
}

func TestDecodeInt16LE(t *testing.T) {
	raw := []byte{0x00, 0x01, 0xFF, 0x7F} // little-endian: 256, 32767
	out := decodeInt16LE(raw)
	require.Len(t, out, 2)
	assert.EqualValues(t, 256, out[0])
	assert.EqualValues(t, 32767, out[1])
}

func TestDownmixMono(t *testing.T) {
	out, err := downmix([]int16{0, 16384, -32768}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, -1.0}, out)
}

func TestDownmixStereoAverages(t *testing.T) {
	out, err := downmix([]int16{16384, 16384, -16384, -16384}, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 0.5, out[0], 1e-9)
	assert.InDelta(t, -0.5, out[1], 1e-9)
}

func TestDownmixRejectsUnsupportedChannelCount(t *testing.T) {
	_, err := downmix([]int16{0, 0, 0, 0}, 4)
	assert.Error(t, err)
}

func TestReadWavAsFloat64(t *testing.T) {
	path := testFixture(t)

	samples, sampleRate, err := ReadWavAsFloat64(path)
	require.NoError(t, err)
	assert.NotEmpty(t, samples)
	assert.NotZero(t, sampleRate)

	for _, s := range samples {
		assert.GreaterOrEqual(t, s, -1.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestReadWavAsFloat64MissingFile(t *testing.T) {
	_, _, err := ReadWavAsFloat64(filepath.Join(t.TempDir(), "does-not-exist.wav"))
	assert.Error(t, err)
}
