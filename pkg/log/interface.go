// Package log provides a structured logging interface for gstools-go.
//
// This package defines a minimal, slog-compatible logging interface that
// allows for flexible implementation switching while providing structured
// logging for geostatistical operations. The interface integrates with Go's
// standard log/slog package and maps cleanly onto libraries like zerolog.
//
// Key features:
//   - slog-compatible interface
//   - domain attribute keys (model families, generator state, sampling)
//   - context-aware logging with field chaining
//   - test-friendly capture helpers
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.FamilyKey, "Gaussian",
//	    log.DimKey, 3,
//	)
//	logger.Debug("spectral modes sampled",
//	    log.OperationKey, log.OperationUpdate,
//	    log.ModeCountKey, 1000,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// It is implementation-agnostic so backends can be swapped while keeping a
// consistent API. With returns contextual loggers carrying pre-populated
// fields.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	// Used for detailed diagnostics such as sampler acceptance rates or
	// quadrature refinement levels.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If an error value is among the fields under log.ErrAttr, stack trace
	// information is extracted into its own attribute by the handler.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	//
	// Example:
	//
	//	gen := logger.With(log.GeneratorKey, "RandMeth", log.SeedKey, 19031977)
	//	gen.Debug("reseeded")  // carries generator and seed fields
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip expensive field construction for suppressed levels.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates and configures loggers. It exists for dependency
// injection and for swapping in capture implementations during tests.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for loggers from this provider.
	SetLevel(level Level)
}
