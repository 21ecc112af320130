package echofp

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/echofp/echofp/internal/config"
)

// fileConfig mirrors internal/config.Config field-for-field but with
// lower_snake_case keys, so a deployment's config.yaml reads like the
// spec's own configuration table rather than Go identifiers.
type fileConfig struct {
	SampleRate         *int     `yaml:"sr"`
	NFFT               *int     `yaml:"n_fft"`
	HopRatio           *int     `yaml:"hop_ratio"`
	FreqNeighborhood   *int     `yaml:"freq_neighborhood"`
	TimeNeighborhood   *int     `yaml:"time_neighborhood"`
	AmplitudeThreshold *float64 `yaml:"amplitude_threshold"`
	NumBands           *int     `yaml:"num_bands"`
	FanOut             *int     `yaml:"fanout"`
	DeltaTMin          *int     `yaml:"dt_min"`
	DeltaTMaxSeconds   *float64 `yaml:"dt_max_seconds"`

	SnapshotPath string `yaml:"snapshot_path"`
}

// LoadConfigFile reads a YAML configuration file at path and returns a
// WithPipelineConfig/WithSnapshotPath option built from it. Fields
// absent from the file fall back to config.Default(); a present field
// overrides it. The resulting pipeline config is validated before
// return, so a malformed file fails at load time rather than at the
// first Add/Recognize call.
func LoadConfigFile(path string) (Option, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("echofp: reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("echofp: parsing config file %s: %w", path, err)
	}

	pipeline := config.Default()
	fc.applyTo(&pipeline)
	if err := pipeline.Validate(); err != nil {
		return nil, fmt.Errorf("echofp: config file %s: %w", path, err)
	}

	snapshotPath := fc.SnapshotPath
	return func(c *Config) {
		c.Pipeline = pipeline
		if snapshotPath != "" {
			c.SnapshotPath = snapshotPath
		}
	}, nil
}

func (fc fileConfig) applyTo(cfg *config.Config) {
	if fc.SampleRate != nil {
		cfg.SampleRate = *fc.SampleRate
	}
	if fc.NFFT != nil {
		cfg.NFFT = *fc.NFFT
	}
	if fc.HopRatio != nil {
		cfg.HopRatio = *fc.HopRatio
	}
	if fc.FreqNeighborhood != nil {
		cfg.FreqNeighborhood = *fc.FreqNeighborhood
	}
	if fc.TimeNeighborhood != nil {
		cfg.TimeNeighborhood = *fc.TimeNeighborhood
	}
	if fc.AmplitudeThreshold != nil {
		cfg.AmplitudeThreshold = *fc.AmplitudeThreshold
	}
	if fc.NumBands != nil {
		cfg.NumBands = *fc.NumBands
	}
	if fc.FanOut != nil {
		cfg.FanOut = *fc.FanOut
	}
	if fc.DeltaTMin != nil {
		cfg.DeltaTMin = *fc.DeltaTMin
	}
	if fc.DeltaTMaxSeconds != nil {
		cfg.DeltaTMaxSeconds = *fc.DeltaTMaxSeconds
	}
}
