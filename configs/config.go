// Package config loads the YAML configuration file that drives the
// eureka CLI: database connection info for the optional SQL catalog,
// the path to the plain-text library index, and the fingerprinting
// worker-pool size.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DatabaseConfig configures the optional SQL-backed library catalog
// (internal/librarydb). Type is "mysql", "postgres" or "" (disabled, the
// plain-text index at Library.IndexPath is the only store).
type DatabaseConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// LibraryConfig configures the plain-text library index, the canonical
// exchange format described in spec.md §6.
type LibraryConfig struct {
	IndexPath string `yaml:"index_path"`
}

// FingerprintConfig tunes the DSP pipeline's concurrency; the numeric
// signal-processing constants themselves are canonical and live in
// internal/dsp, not here.
type FingerprintConfig struct {
	WorkerPoolSize int `yaml:"worker_pool_size"`
}

// Config is the top-level configuration loaded from configs/config.yaml.
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Library     LibraryConfig     `yaml:"library"`
	Fingerprint FingerprintConfig `yaml:"fingerprint"`
}

// defaults applies fallback values for anything the YAML file left unset,
// so a minimal or missing config file still produces a usable Config.
func (c *Config) defaults() {
	if c.Library.IndexPath == "" {
		c.Library.IndexPath = "eureka_index.txt"
	}
	if c.Fingerprint.WorkerPoolSize <= 0 {
		c.Fingerprint.WorkerPoolSize = 8
	}
}

// LoadConfig reads and parses the YAML file at path. A missing file is not
// an error: it yields a Config with only the defaults applied, so the CLI
// works out of the box against the plain-text index.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.defaults()
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}

	cfg.defaults()
	return cfg, nil
}
