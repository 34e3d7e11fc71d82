// Package logging builds the zap loggers used across vibekstra.
// Library packages take a *zap.Logger and only log request metadata at debug;
// errors are returned to the caller, and the CLI decides how to report them.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vibekstra/internal/config"
)

// Category names a subsystem. Loggers handed to a subsystem are named after
// it so its lines can be filtered.
type Category string

const (
	CategoryCLI      Category = "cli"
	CategoryProvider Category = "provider"
	CategorySolver   Category = "solver"
	CategoryBatch    Category = "batch"
)

// New builds a logger from cfg. Format "json" uses the production encoder,
// "console" the development one. Output goes to stderr so stdout stays
// reserved for results.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zcfg zap.Config
	switch cfg.Format {
	case "json":
		zcfg = zap.NewProductionConfig()
	case "console", "":
		zcfg = zap.NewDevelopmentConfig()
		zcfg.Development = false
		zcfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// For returns logger scoped to a category. A nil logger yields a no-op.
func For(logger *zap.Logger, c Category) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(string(c))
}
