// Package config holds the typeminer configuration: worker bounds, the
// default filter chain, and source discovery patterns. Configuration can
// be loaded from a YAML file with environment variable overrides.
package config

import (
	"fmt"

	srcloader "github.com/typeminer/typeminer/internal/loader"
)

// Config is the complete typeminer configuration.
type Config struct {
	Workers int         `yaml:"workers" mapstructure:"workers"`
	Filters []string    `yaml:"filters" mapstructure:"filters"`
	Paths   PathsConfig `yaml:"paths" mapstructure:"paths"`
}

// PathsConfig defines which files to extract and which to skip.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// Default returns a configuration with sensible defaults: all CPUs,
// the standard dataset filter chain, and Python source discovery.
func Default() *Config {
	return &Config{
		Workers: 0, // 0 means one worker per CPU
		Filters: []string{"NoStringTypeFilter", "EmptyFilter"},
		Paths: PathsConfig{
			Include: srcloader.DefaultInclude,
			Ignore:  srcloader.DefaultIgnore,
		},
	}
}

// Validate checks the configuration for values no run could honor.
func Validate(cfg *Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	if len(cfg.Paths.Include) == 0 {
		return fmt.Errorf("paths.include must not be empty")
	}
	return nil
}
