package echofp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigFileOverridesOnlyPresentFields(t *testing.T) {
	path := writeConfigFile(t, "num_bands: 4\nsnapshot_path: /tmp/echofp.snap\n")

	opt, err := LoadConfigFile(path)
	require.NoError(t, err)

	cfg := defaultConfig()
	opt(cfg)

	assert.Equal(t, 4, cfg.Pipeline.NumBands)
	assert.Equal(t, "/tmp/echofp.snap", cfg.SnapshotPath)
	// Untouched fields keep the package default.
	assert.Equal(t, 2048, cfg.Pipeline.NFFT)
}

func TestLoadConfigFileRejectsInvalidPipeline(t *testing.T) {
	path := writeConfigFile(t, "n_fft: 3\n") // not a power of 2

	_, err := LoadConfigFile(path)
	assert.Error(t, err)
}

func TestLoadConfigFileRejectsMissingFile(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigFileRejectsMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "num_bands: [this, is, not, an, int]\n")
	_, err := LoadConfigFile(path)
	assert.Error(t, err)
}
