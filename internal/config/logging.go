package config

import (
	"fmt"
	"slices"
)

// ValidLogLevels lists accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error", "off"}

// ValidLogFormats lists accepted logging.format values.
var ValidLogFormats = []string{"json", "console"}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error, off
	Format string `yaml:"format"` // json, console
}

// Enabled reports whether any log output is wanted.
func (c LoggingConfig) Enabled() bool {
	return c.Level != "off"
}

// Validate checks level and format.
func (c LoggingConfig) Validate() error {
	if !slices.Contains(ValidLogLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Level, ValidLogLevels)
	}
	if !slices.Contains(ValidLogFormats, c.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Format, ValidLogFormats)
	}
	return nil
}
