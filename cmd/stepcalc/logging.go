package main

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a zap backed logr.Logger configured with the given level.
// Verbose forces debug level, which enables the library's V(1) records.
func newLogger(level string, verbose bool) (logr.Logger, func(), error) {
	var zapLevel zapcore.Level

	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info", "":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return logr.Logger{}, nil, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}

	config := zap.NewProductionConfig()
	if verbose || zapLevel == zapcore.DebugLevel {
		config = zap.NewDevelopmentConfig()
		zapLevel = zapcore.DebugLevel
	}

	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	z, err := config.Build()
	if err != nil {
		return logr.Logger{}, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return zapr.NewLogger(z), func() { _ = z.Sync() }, nil
}
