package config

import (
	"compress/flate"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// Config holds the settings for a split run
type Config struct {
	// Workers is the number of files processed concurrently
	Workers int `yaml:"workers" mapstructure:"workers"`

	// CompressionLevel is the deflate level used for client archives
	CompressionLevel int `yaml:"compression_level" mapstructure:"compression_level"`

	// ErrorLog is the name of the gzip-compressed log written to the
	// destination directory
	ErrorLog string `yaml:"error_log" mapstructure:"error_log"`

	// Manifest is the name of the run summary written to the destination
	// directory. Empty disables it.
	Manifest string `yaml:"manifest" mapstructure:"manifest"`

	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	// SingleEnvelopeEntry stores files holding exactly one envelope under
	// their relative path, instead of <path>/0
	SingleEnvelopeEntry bool `yaml:"single_envelope_entry" mapstructure:"single_envelope_entry"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Workers:          runtime.NumCPU(),
		CompressionLevel: flate.BestCompression,
		ErrorLog:         "log.gz",
		Manifest:         "manifest.yaml",
		LogLevel:         "info",
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.CompressionLevel < flate.DefaultCompression || c.CompressionLevel > flate.BestCompression {
		errs = append(
			errs,
			fmt.Errorf(
				"compression_level must be between %d and %d, got %d",
				flate.DefaultCompression,
				flate.BestCompression,
				c.CompressionLevel,
			),
		)
	}
	if strings.TrimSpace(c.ErrorLog) == "" {
		errs = append(errs, errors.New("error_log must not be empty"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
