package echofp

import (
	"github.com/echofp/echofp/internal/config"
	"github.com/echofp/echofp/pkg/logger"
)

// Config holds configuration for a Service: the fingerprinting
// pipeline's tunables (config.Config) plus the facade's own
// collaborators.
type Config struct {
	// Pipeline holds the ten spec-level tunables (sample rate, n_fft,
	// hop_ratio, ...). Defaults to config.Default().
	Pipeline config.Config

	// SnapshotPath is the file NewService restores the index from and
	// Close persists it to. Snapshot/Restore do not use it. Empty
	// disables both the load on init and the save on close.
	SnapshotPath string

	// Logger receives structured logs. Defaults to logger.GetLogger().
	Logger Logger

	// Catalog optionally stores human-facing metadata per recording.
	// Nil means no catalog: Add/Recognize/List operate on RID alone.
	Catalog Catalog
}

// Option configures a Service at construction time.
type Option func(*Config)

// WithPipelineConfig overrides the fingerprinting pipeline tunables.
func WithPipelineConfig(cfg config.Config) Option {
	return func(c *Config) { c.Pipeline = cfg }
}

// WithSnapshotPath sets the file NewService will attempt to restore
// from, and that Service.Close persists to.
func WithSnapshotPath(path string) Option {
	return func(c *Config) { c.SnapshotPath = path }
}

// WithLogger sets a custom logger.
func WithLogger(log Logger) Option {
	return func(c *Config) { c.Logger = log }
}

// WithCatalog sets a custom metadata catalog.
func WithCatalog(cat Catalog) Option {
	return func(c *Config) { c.Catalog = cat }
}

// defaultConfig returns a Config with spec defaults and no catalog.
func defaultConfig() *Config {
	return &Config{
		Pipeline: config.Default(),
		Logger:   logger.GetLogger(),
	}
}
