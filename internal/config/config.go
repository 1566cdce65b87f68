package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"abtest/internal/report"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".abtest.yaml"

// Config holds all abtest configuration.
type Config struct {
	// Output rendering
	Output OutputConfig `yaml:"output"`

	// Input validation
	Validation ValidationConfig `yaml:"validation"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig configures how results are printed.
type OutputConfig struct {
	Format    string `yaml:"format"`    // plain, json, pretty, markdown, report
	Precision int    `yaml:"precision"` // digits after the point, -1 = shortest round-trip
	Theme     string `yaml:"theme"`     // glamour style for the report format
}

// ValidationConfig configures input checking.
type ValidationConfig struct {
	// Strict rejects impossible inputs instead of letting NaN/Inf through.
	Strict bool `yaml:"strict"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:    string(report.FormatPlain),
			Precision: -1,
			Theme:     report.ThemeAuto,
		},
		Validation: ValidationConfig{
			Strict: false,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. Unparseable
// values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ABTEST_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("ABTEST_PRECISION"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Output.Precision = p
		}
	}
	if v := os.Getenv("ABTEST_THEME"); v != "" {
		c.Output.Theme = v
	}
	if v := os.Getenv("ABTEST_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Validation.Strict = b
		}
	}
	if v := os.Getenv("ABTEST_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if c.Output.Precision < -1 {
		return fmt.Errorf("invalid output precision: %d (must be -1 or more)", c.Output.Precision)
	}
	if !slices.Contains(report.Themes, c.Output.Theme) {
		return fmt.Errorf("invalid output theme: %s (valid: %v)", c.Output.Theme, report.Themes)
	}
	return c.Logging.Validate()
}

// YAML returns the configuration as a YAML document.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}
