// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/pondus/internal/schemas"
)

// Config is the pondus configuration, loaded from a JSON file. All fields are
// optional; missing values use defaults.
type Config struct {
	// Sources holds per-provider settings keyed by source name.
	Sources map[string]SourceConfig `json:"sources,omitempty"`
	// Cache controls the freshness cache.
	Cache CacheConfig `json:"cache,omitempty"`
	// Alias points at a user override dataset.
	Alias AliasConfig `json:"alias,omitempty"`
	// UseBrowser enables headless-browser sources (requires Chrome/Chromium).
	UseBrowser bool `json:"use_browser,omitempty"`
}

// SourceConfig holds settings for one source.
type SourceConfig struct {
	APIKey string `json:"api_key,omitempty"`
}

// CacheConfig controls where cached payloads live and how long they stay fresh.
type CacheConfig struct {
	TTLHours int    `json:"ttl_hours,omitempty" validate:"gte=0"`
	Dir      string `json:"dir,omitempty"`
}

// AliasConfig points at an optional user alias dataset that overrides the
// bundled one.
type AliasConfig struct {
	Path string `json:"path,omitempty"`
}

// Load reads the config file at path, or the default per-user location when
// path is empty. A missing file yields the zero config; a file that exists
// but cannot be parsed or validated is a fatal error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := schemas.ValidateConfig(data); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "pondus", "config.json")
}

// Validate checks numeric ranges and referenced paths.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Alias.Path != "" {
		if _, err := os.Stat(c.Alias.Path); os.IsNotExist(err) {
			return fmt.Errorf("config error: alias override not found: %s", c.Alias.Path)
		}
	}
	return nil
}

// APIKey returns the configured API key for a source, preferring the
// source-specific environment variable (e.g. AA_API_KEY for
// artificial-analysis) over the config file.
func (c *Config) APIKey(source string) string {
	envName := strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(source)) + "_API_KEY"
	if key := strings.TrimSpace(os.Getenv(envName)); key != "" {
		return key
	}
	// Shorthand env var used by the artificial-analysis docs.
	if source == "artificial-analysis" {
		if key := strings.TrimSpace(os.Getenv("AA_API_KEY")); key != "" {
			return key
		}
	}
	if sc, ok := c.Sources[source]; ok {
		return sc.APIKey
	}
	return ""
}
