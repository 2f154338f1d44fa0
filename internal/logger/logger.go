// Package logger defines the logging interface used across the kiosk
// and a default implementation backed by log/slog.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the logging interface injected into every component.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	SetLevel(level slog.Level)
	GetLevel() slog.Level
	EnableHTTPLogging()
	DisableHTTPLogging()
	IsHTTPLoggingEnabled() bool
}

// SlogLogger implements Logger on top of a slog.Logger with a runtime
// adjustable level and a toggle for per-request HTTP logging.
type SlogLogger struct {
	logger      *slog.Logger
	level       *slog.LevelVar
	httpLogging atomic.Bool
}

// New creates a SlogLogger at info level.
func New() *SlogLogger {
	return NewWithLevel(slog.LevelInfo)
}

// NewWithLevel creates a SlogLogger at the given level, writing text
// records to stdout.
func NewWithLevel(level slog.Level) *SlogLogger {
	levelVar := &slog.LevelVar{}
	levelVar.Set(level)

	return &SlogLogger{
		logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: levelVar,
		})),
		level: levelVar,
	}
}

// ParseLevel converts a string level name to a slog.Level.
// Unrecognized names fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// SetLevel changes the logging level at runtime.
func (l *SlogLogger) SetLevel(level slog.Level) { l.level.Set(level) }

// GetLevel returns the current logging level.
func (l *SlogLogger) GetLevel() slog.Level { return l.level.Level() }

// EnableHTTPLogging turns on HTTP request logging.
func (l *SlogLogger) EnableHTTPLogging() { l.httpLogging.Store(true) }

// DisableHTTPLogging turns off HTTP request logging.
func (l *SlogLogger) DisableHTTPLogging() { l.httpLogging.Store(false) }

// IsHTTPLoggingEnabled reports whether HTTP request logging is on.
func (l *SlogLogger) IsHTTPLoggingEnabled() bool { return l.httpLogging.Load() }
