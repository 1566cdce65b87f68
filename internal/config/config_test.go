package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Output.Format != "plain" {
		t.Errorf("expected Format=plain, got %s", cfg.Output.Format)
	}
	if cfg.Output.Precision != -1 {
		t.Errorf("expected Precision=-1, got %d", cfg.Output.Precision)
	}
	if cfg.Validation.Strict {
		t.Error("expected strict validation to be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "abtest.yaml")

	cfg := DefaultConfig()
	cfg.Output.Format = "json"
	cfg.Output.Precision = 4
	cfg.Validation.Strict = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Output.Format != "json" {
		t.Errorf("expected Format=json, got %s", loaded.Output.Format)
	}
	if loaded.Output.Precision != 4 {
		t.Errorf("expected Precision=4, got %d", loaded.Output.Precision)
	}
	if !loaded.Validation.Strict {
		t.Error("expected Strict=true after reload")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Format != "plain" || cfg.Logging.Level != "warn" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abtest.yaml")
	if err := os.WriteFile(path, []byte("output:\n  format: pretty\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Format != "pretty" {
		t.Errorf("expected Format=pretty, got %s", cfg.Output.Format)
	}
	if cfg.Output.Precision != -1 {
		t.Errorf("expected default Precision=-1, got %d", cfg.Output.Precision)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abtest.yaml")
	if err := os.WriteFile(path, []byte("output: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }},
		{"precision below -1", func(c *Config) { c.Output.Precision = -2 }},
		{"unknown theme", func(c *Config) { c.Output.Theme = "neon" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "logfmt" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoggingConfig_Enabled(t *testing.T) {
	if !(LoggingConfig{Level: "warn"}).Enabled() {
		t.Error("warn should be enabled")
	}
	if (LoggingConfig{Level: "off"}).Enabled() {
		t.Error("off should be disabled")
	}
}
