// Package config loads the client configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full client configuration.
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url" env:"ZENITH_API_BASE_URL"`
		Timeout string `yaml:"timeout" env:"ZENITH_API_TIMEOUT"`
	} `yaml:"api"`

	Budget struct {
		// Monthly is the overall budget that the dashboard's
		// remaining figure is measured against.
		Monthly float64 `yaml:"monthly" env:"ZENITH_BUDGET_MONTHLY"`
	} `yaml:"budget"`

	SessionFile string `yaml:"session_file" env:"ZENITH_SESSION_FILE"`
	CacheFile   string `yaml:"cache_file" env:"ZENITH_CACHE_FILE"`

	Logging struct {
		File  string `yaml:"file" env:"ZENITH_LOG_FILE"`
		Level string `yaml:"level" env:"ZENITH_LOG_LEVEL"`
	} `yaml:"logging"`
}

// DefaultPath returns the default config file location,
// ~/.zenith/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}

	return filepath.Join(home, ".zenith", "config.yaml")
}

// Load reads the config file at path when it exists, then applies env
// overrides. A missing file is fine; defaults cover everything.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if _, err := os.Stat(path); err == nil {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("error validating config: api.base_url must not be empty")
	}

	if _, err := cfg.RequestTimeout(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RequestTimeout parses the configured per-request timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("error parsing api.timeout %q: %w", c.API.Timeout, err)
	}

	return d, nil
}

func setDefaults(cfg *Config) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	dir := filepath.Join(home, ".zenith")

	cfg.API.BaseURL = "http://localhost:5000/api/v1"
	cfg.API.Timeout = "15s"
	cfg.Budget.Monthly = 1000
	cfg.SessionFile = filepath.Join(dir, "session.json")
	cfg.CacheFile = filepath.Join(dir, "cache.sqlite")
	cfg.Logging.File = filepath.Join(dir, "debug.log")
	cfg.Logging.Level = "info"
}

func loadFromEnv(cfg *Config) {
	overrideString(&cfg.API.BaseURL, "ZENITH_API_BASE_URL")
	overrideString(&cfg.API.Timeout, "ZENITH_API_TIMEOUT")
	overrideString(&cfg.SessionFile, "ZENITH_SESSION_FILE")
	overrideString(&cfg.CacheFile, "ZENITH_CACHE_FILE")
	overrideString(&cfg.Logging.File, "ZENITH_LOG_FILE")
	overrideString(&cfg.Logging.Level, "ZENITH_LOG_LEVEL")

	if v := os.Getenv("ZENITH_BUDGET_MONTHLY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Budget.Monthly = f
		}
	}
}

func overrideString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
