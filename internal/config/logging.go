package config

import (
	"fmt"
	"slices"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"console", "json"}
)

// Validate checks level and format.
func (c LoggingConfig) Validate() error {
	if !slices.Contains(validLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Level, validLevels)
	}
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Format, validFormats)
	}
	return nil
}

