package logger

import (
	"log/slog"
	"testing"
)

func TestNew_DefaultsToInfoLevel(t *testing.T) {
	log := New()

	if log == nil {
		t.Fatal("expected logger to be created")
	}
	if log.GetLevel() != slog.LevelInfo {
		t.Errorf("expected info level, got %v", log.GetLevel())
	}
}

func TestSetLevel(t *testing.T) {
	log := New()

	log.SetLevel(slog.LevelError)
	if log.GetLevel() != slog.LevelError {
		t.Errorf("expected error level, got %v", log.GetLevel())
	}

	log.SetLevel(slog.LevelDebug)
	if log.GetLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", log.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestHTTPLoggingToggle(t *testing.T) {
	log := New()

	if log.IsHTTPLoggingEnabled() {
		t.Error("http logging should start disabled")
	}

	log.EnableHTTPLogging()
	if !log.IsHTTPLoggingEnabled() {
		t.Error("expected http logging enabled")
	}

	log.DisableHTTPLogging()
	if log.IsHTTPLoggingEnabled() {
		t.Error("expected http logging disabled")
	}
}
