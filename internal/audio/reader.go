// Package audio decodes 16-bit PCM WAV files into the mono float64
// sample buffers the fingerprinting pipeline expects. It walks RIFF
// chunks directly rather than assuming the canonical 44-byte header,
// since ffmpeg-produced files sometimes carry LIST/INFO chunks before
// the data chunk.
package audio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	riffID = "RIFF"
	waveID = "WAVE"
	fmtID  = "fmt "
	dataID = "data"

	pcmFormatTag = 1
	pcmBitDepth  = 16
	fullScaleI16 = 1.0 / 32768.0
)

// Format describes the fmt chunk of a WAV file.
type Format struct {
	Tag        uint16
	Channels   uint16
	SampleRate uint32
	BitDepth   uint16
}

// decoder walks the RIFF chunk stream of a single WAV file.
type decoder struct {
	r *bufio.Reader
}

// ReadWavAsFloat64 decodes a 16-bit PCM WAV file at path into mono
// samples normalized to [-1, 1], along with its sample rate.
func ReadWavAsFloat64(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	d := &decoder{r: bufio.NewReader(f)}
	if err := d.readRIFFHeader(); err != nil {
		return nil, 0, err
	}

	format, pcm, err := d.readChunks()
	if err != nil {
		return nil, 0, err
	}
	if format.Tag != pcmFormatTag {
		return nil, 0, fmt.Errorf("audio: unsupported WAV format tag %d, only PCM (1) is supported", format.Tag)
	}
	if format.BitDepth != pcmBitDepth {
		return nil, 0, fmt.Errorf("audio: unsupported bit depth %d, only 16-bit is supported", format.BitDepth)
	}

	samples := decodeInt16LE(pcm)
	mono, err := downmix(samples, format.Channels)
	if err != nil {
		return nil, 0, err
	}
	return mono, int(format.SampleRate), nil
}

// readRIFFHeader consumes and validates the leading 12-byte
// RIFF/size/WAVE header.
func (d *decoder) readRIFFHeader() error {
	var riff, wave [4]byte
	var size uint32

	if err := binary.Read(d.r, binary.LittleEndian, &riff); err != nil {
		return fmt.Errorf("audio: reading RIFF tag: %w", err)
	}
	if err := binary.Read(d.r, binary.LittleEndian, &size); err != nil {
		return fmt.Errorf("audio: reading RIFF size: %w", err)
	}
	if err := binary.Read(d.r, binary.LittleEndian, &wave); err != nil {
		return fmt.Errorf("audio: reading WAVE tag: %w", err)
	}
	if string(riff[:]) != riffID || string(wave[:]) != waveID {
		return errors.New("audio: not a RIFF/WAVE file")
	}
	return nil
}

// readChunks scans the chunk stream for the fmt and data chunks,
// skipping anything else (LIST, INFO, junk, ...), and stops as soon
// as both have been seen.
func (d *decoder) readChunks() (Format, []byte, error) {
	var format Format
	var pcm []byte
	haveFormat, haveData := false, false

	for !haveFormat || !haveData {
		id, size, err := d.readChunkHeader()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Format{}, nil, err
		}

		switch id {
		case fmtID:
			format, err = d.readFormatChunk(size)
			haveFormat = true
		case dataID:
			pcm, err = d.readRaw(size)
			haveData = true
		default:
			err = d.skip(size)
		}
		if err != nil {
			return Format{}, nil, fmt.Errorf("audio: chunk %q: %w", id, err)
		}

		if size%2 == 1 {
			if err := d.skip(1); err != nil {
				return Format{}, nil, fmt.Errorf("audio: skipping pad byte: %w", err)
			}
		}
	}

	if !haveFormat {
		return Format{}, nil, errors.New("audio: no fmt chunk found")
	}
	if !haveData {
		return Format{}, nil, errors.New("audio: no data chunk found")
	}
	return format, pcm, nil
}

func (d *decoder) readChunkHeader() (string, uint32, error) {
	var id [4]byte
	var size uint32
	if err := binary.Read(d.r, binary.LittleEndian, &id); err != nil {
		return "", 0, err
	}
	if err := binary.Read(d.r, binary.LittleEndian, &size); err != nil {
		return "", 0, fmt.Errorf("reading chunk size: %w", err)
	}
	return string(id[:]), size, nil
}

func (d *decoder) readFormatChunk(size uint32) (Format, error) {
	var f Format
	var byteRate uint32
	var blockAlign uint16

	for _, field := range []any{&f.Tag, &f.Channels, &f.SampleRate, &byteRate, &blockAlign, &f.BitDepth} {
		if err := binary.Read(d.r, binary.LittleEndian, field); err != nil {
			return Format{}, fmt.Errorf("reading field: %w", err)
		}
	}

	// A fmt chunk may carry extension bytes past the 16-byte core
	// (e.g. WAVE_FORMAT_EXTENSIBLE); discard whatever is left.
	if extra := int64(size) - 16; extra > 0 {
		if err := d.skip(uint32(extra)); err != nil {
			return Format{}, fmt.Errorf("skipping fmt extension: %w", err)
		}
	}
	return f, nil
}

func (d *decoder) readRaw(size uint32) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, fmt.Errorf("reading %d bytes: %w", size, err)
	}
	return buf, nil
}

func (d *decoder) skip(n uint32) error {
	_, err := io.CopyN(io.Discard, d.r, int64(n))
	return err
}

// decodeInt16LE reinterprets raw little-endian PCM bytes as int16
// samples.
func decodeInt16LE(raw []byte) []int16 {
	out := make([]int16, len(raw)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	return out
}

// downmix converts interleaved int16 samples to mono float64 in
// [-1, 1], averaging stereo channels.
func downmix(samples []int16, channels uint16) ([]float64, error) {
	switch channels {
	case 1:
		out := make([]float64, len(samples))
		for i, s := range samples {
			out[i] = float64(s) * fullScaleI16
		}
		return out, nil
	case 2:
		frames := len(samples) / 2
		out := make([]float64, frames)
		for i := 0; i < frames; i++ {
			l := float64(samples[2*i]) * fullScaleI16
			r := float64(samples[2*i+1]) * fullScaleI16
			out[i] = (l + r) * 0.5
		}
		return out, nil
	default:
		return nil, fmt.Errorf("audio: unsupported channel count %d, only mono/stereo are supported", channels)
	}
}
