//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/echofp/echofp/internal/config"
	"github.com/echofp/echofp/internal/dsp"
	"github.com/echofp/echofp/internal/fingerprint"
	"github.com/echofp/echofp/internal/peaks"
)

// Error codes returned to JavaScript.
const (
	ErrorNone = iota
	ErrorInvalidArgs
	ErrorProcessing
	ErrorSpectrogramFailed
	ErrorNoFingerprints
)

// generateFingerprint processes audio samples in-browser and returns
// the same anchor/target hashes the server-side pipeline would
// produce, so a client can submit them to POST /api/recognize/hashes
// without uploading raw audio.
//
// JavaScript signature:
//
//	generateFingerprint(audioArray, sampleRate, channels)
//
// Returns: { error: number, data: array | string }
//   - data on success: array of {hash: string, anchorFrame: number}
//     (hash is a decimal string since it does not fit a JS Number)
func generateFingerprint(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 3 arguments: audioArray, sampleRate, channels")
	}

	audioDataJS, sampleRateJS, channelsJS := args[0], args[1], args[2]
	if audioDataJS.Type() != js.TypeObject {
		return makeErrorResponse(ErrorInvalidArgs, "audioArray must be an Array or Float64Array")
	}
	if sampleRateJS.Type() != js.TypeNumber || channelsJS.Type() != js.TypeNumber {
		return makeErrorResponse(ErrorInvalidArgs, "sampleRate and channels must be numbers")
	}

	sampleRate := sampleRateJS.Int()
	channels := channelsJS.Int()
	if sampleRate <= 0 {
		return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("Invalid sample rate: %d", sampleRate))
	}
	if channels < 1 || channels > 2 {
		return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("Channels must be 1 (mono) or 2 (stereo), got: %d", channels))
	}

	length := audioDataJS.Length()
	if length == 0 {
		return makeErrorResponse(ErrorInvalidArgs, "audioArray is empty")
	}
	samples := make([]float64, length)
	for i := 0; i < length; i++ {
		val := audioDataJS.Index(i)
		if val.Type() != js.TypeNumber {
			return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("audioArray element %d is not a number", i))
		}
		samples[i] = val.Float()
	}
	if channels == 2 {
		samples = stereoToMono(samples)
	}

	cfg := config.Default()
	cfg.SampleRate = sampleRate

	spec, err := dsp.Compute(samples, cfg)
	if err != nil {
		return makeErrorResponse(ErrorSpectrogramFailed, fmt.Sprintf("spectrogram computation failed: %v", err))
	}

	pks := peaks.Extract(spec.Frames, cfg)
	fps := fingerprint.Generate(pks, cfg)
	if len(fps) == 0 {
		return makeErrorResponse(ErrorNoFingerprints, "no fingerprint hashes generated (audio may be silent or too short)")
	}

	hashArray := js.Global().Get("Array").New()
	for i, fp := range fps {
		obj := js.Global().Get("Object").New()
		obj.Set("hash", fmt.Sprintf("%d", fp.Hash))
		obj.Set("anchorFrame", fp.AnchorFrame)
		hashArray.SetIndex(i, obj)
	}

	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", hashArray)
	return result
}

// stereoToMono converts interleaved stereo samples to mono by
// averaging channels.
func stereoToMono(stereo []float64) []float64 {
	if len(stereo)%2 != 0 {
		stereo = stereo[:len(stereo)-1]
	}
	mono := make([]float64, len(stereo)/2)
	for i := range mono {
		mono[i] = (stereo[i*2] + stereo[i*2+1]) / 2.0
	}
	return mono
}

func makeErrorResponse(errorCode int, message string) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", errorCode)
	result.Set("data", message)
	return result
}

func main() {
	console := js.Global().Get("console")
	logf := func(args ...any) {
		if !console.IsUndefined() {
			console.Call("log", fmt.Sprint(args...))
		}
	}

	done := make(chan struct{})

	logf("echofp WASM module initializing...")
	js.Global().Set("generateFingerprint", js.FuncOf(generateFingerprint))
	logf("generateFingerprint function registered")

	window := js.Global().Get("window")
	if !window.IsUndefined() {
		event := js.Global().Get("CustomEvent").New("wasmReady", js.Global().Get("Object").New())
		window.Call("dispatchEvent", event)
		logf("wasmReady event dispatched")
	}

	logf("echofp WASM module loaded and ready")
	<-done
}
