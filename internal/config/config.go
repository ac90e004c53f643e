// Package config loads and validates the salient configuration from files,
// environment variables and command-line flags.
package config

import (
	"fmt"

	"github.com/MeKo-Tech/salient/internal/rips"
)

// Config represents the complete configuration for the salient CLI. It
// supports loading from configuration files, environment variables and
// command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Detection parameters
	Detector DetectorConfig `mapstructure:"detector" yaml:"detector" json:"detector"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// DetectorConfig contains the detection pipeline settings.
type DetectorConfig struct {
	Epsilon float64 `mapstructure:"epsilon" yaml:"epsilon" json:"epsilon"`
	Scaling float64 `mapstructure:"scaling" yaml:"scaling" json:"scaling"`
	Policy  string  `mapstructure:"policy" yaml:"policy" json:"policy"`
	Workers int     `mapstructure:"workers" yaml:"workers" json:"workers"`
	// Side resizes the input to a square of this length before detection.
	// 0 keeps the native size, which must already be square.
	Side int `mapstructure:"side" yaml:"side" json:"side"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	Mask   string `mapstructure:"mask" yaml:"mask" json:"mask"`
}

// DefaultConfig returns a config with reference defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Detector: DetectorConfig{
			Epsilon: 1.0,
			Scaling: 1.0,
			Policy:  string(rips.PolicyConjunctive),
			Workers: 0,
			Side:    0,
		},
		Output: OutputConfig{
			Format: "text",
			Mask:   "",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log level %q", c.LogLevel)
	}
	if err := c.Detector.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}

// Validate checks the detector settings.
func (c *DetectorConfig) Validate() error {
	if c.Epsilon < 0 {
		return fmt.Errorf("config: epsilon must be non-negative, got %g", c.Epsilon)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be non-negative, got %d", c.Workers)
	}
	if c.Side < 0 {
		return fmt.Errorf("config: side must be non-negative, got %d", c.Side)
	}
	if _, err := rips.ParsePolicy(c.Policy); err != nil {
		return err
	}
	return nil
}

// Validate checks the output settings.
func (c *OutputConfig) Validate() error {
	switch c.Format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("config: invalid output format %q (must be text or json)", c.Format)
	}
}
