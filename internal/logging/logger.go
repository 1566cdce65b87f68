// Package logging builds the zap logger used by abtest.
// Logs always go to stderr so stdout carries nothing but results.
package logging

import (
	"fmt"
	"io"
	"os"

	"abtest/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a subsystem; it becomes the zap logger name.
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config loading
	CategoryStats  Category = "stats"  // Distribution building, z-test
	CategoryReport Category = "report" // Output rendering
	CategoryUI     Category = "ui"     // Interactive form
)

// New builds a logger writing to stderr. verbose forces debug level even
// when logging is off in the config.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	return NewWithWriter(cfg, verbose, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg config.LoggingConfig, verbose bool, w io.Writer) (*zap.Logger, error) {
	if !cfg.Enabled() && !verbose {
		return zap.NewNop(), nil
	}

	level := zapcore.DebugLevel
	if !verbose {
		var err error
		if level, err = zapcore.ParseLevel(cfg.Level); err != nil {
			return nil, fmt.Errorf("failed to parse log level: %w", err)
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch cfg.Format {
	case "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json", "":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr))), nil
}

// ForRun tags a logger with a fresh run id so lines from one invocation
// can be grouped.
func ForRun(l *zap.Logger) (*zap.Logger, string) {
	id := uuid.NewString()
	return l.With(zap.String("run_id", id)), id
}

// Get returns the child logger for a category.
func Get(l *zap.Logger, category Category) *zap.Logger {
	return l.Named(string(category))
}
