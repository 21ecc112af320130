package echofp

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/echofp/echofp/internal/config"
)

// snapshotFormatVersion guards the outer envelope independently of
// internal/index's own versioned envelope, so the facade can evolve
// what it stores around the index (durations, future metadata)
// without the index package needing to know about it.
const snapshotFormatVersion = 1

// snapshotEnvelope is everything Service.Snapshot persists: the index
// itself (already gob-encoded by internal/index), the pipeline config
// it was built under, and recording durations for List.
type snapshotEnvelope struct {
	Version   int
	Config    config.Config
	DurMs     map[string]int
	IndexData []byte
}

func encodeSnapshotEnvelope(env snapshotEnvelope) ([]byte, error) {
	env.Version = snapshotFormatVersion
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSnapshotEnvelope(data []byte) (snapshotEnvelope, error) {
	var env snapshotEnvelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return snapshotEnvelope{}, err
	}
	if env.Version != snapshotFormatVersion {
		return snapshotEnvelope{}, fmt.Errorf("snapshot version %d is incompatible with reader version %d", env.Version, snapshotFormatVersion)
	}
	return env, nil
}
