// Package config holds the decoration toolchain configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all eds-ued configuration.
type Config struct {
	// Asset resolution
	AssetBase     string   `yaml:"asset_base"`
	ExternalHosts []string `yaml:"external_hosts"`

	// Responsive images. The first EagerImageCount images emitted per
	// fragment load eagerly; the rest are lazy.
	PictureWidths   []int `yaml:"picture_widths"`
	EagerImageCount int   `yaml:"eager_image_count"`

	// Block decoration
	EnabledBlocks    []string `yaml:"enabled_blocks"` // empty = all registered
	CardSummaryLimit int      `yaml:"card_summary_limit"`

	// Batch decoration
	MaxConcurrentFiles int `yaml:"max_concurrent_files"`

	// Watch mode
	Watch WatchConfig `yaml:"watch"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // duration string, e.g. "500ms"
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		AssetBase:          "",
		PictureWidths:      []int{750, 1200, 2000},
		EagerImageCount:    1,
		CardSummaryLimit:   120,
		MaxConcurrentFiles: 4,
		Watch:              WatchConfig{Debounce: "500ms"},
	}
}

// Load reads a config file, applies defaults for missing fields and env
// overrides on top. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the config for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.CardSummaryLimit < 0 {
		return fmt.Errorf("card_summary_limit must be >= 0, got %d", c.CardSummaryLimit)
	}
	if c.MaxConcurrentFiles < 1 {
		return fmt.Errorf("max_concurrent_files must be >= 1, got %d", c.MaxConcurrentFiles)
	}
	for _, w := range c.PictureWidths {
		if w <= 0 {
			return fmt.Errorf("picture_widths entries must be positive, got %d", w)
		}
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("invalid watch.debounce: %w", err)
	}
	if d < time.Millisecond {
		return fmt.Errorf("watch.debounce must be at least 1ms, got %s", c.Watch.Debounce)
	}
	return nil
}

// WatchDebounce returns the parsed debounce duration, falling back to the
// default when unset or unparseable.
func (c *Config) WatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// applyEnvOverrides lets the environment override file settings.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("EDS_ASSET_BASE"); v != "" {
		c.AssetBase = v
	}
	if v := os.Getenv("EDS_CARD_SUMMARY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.CardSummaryLimit = n
		}
	}
}
