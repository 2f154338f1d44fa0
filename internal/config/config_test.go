package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != "localhost:8080" {
		t.Errorf("unexpected default addr %q", cfg.Addr)
	}
	if cfg.APIURL != "http://localhost:8000/api" {
		t.Errorf("unexpected default api url %q", cfg.APIURL)
	}
	if cfg.DBPath != "halalan.db" {
		t.Errorf("unexpected default db path %q", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unexpected default log level %q", cfg.LogLevel)
	}
	if cfg.LogHTTP {
		t.Error("http logging should default off")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HALALAN_ADDR", ":9090")
	t.Setenv("HALALAN_API_URL", "https://comelec.example/api")
	t.Setenv("HALALAN_DB", "/data/kiosk.db")
	t.Setenv("HALALAN_LOG_LEVEL", "debug")
	t.Setenv("HALALAN_LOG_HTTP", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("unexpected addr %q", cfg.Addr)
	}
	if cfg.APIURL != "https://comelec.example/api" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.DBPath != "/data/kiosk.db" {
		t.Errorf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unexpected log level %q", cfg.LogLevel)
	}
	if !cfg.LogHTTP {
		t.Error("expected http logging enabled")
	}
}

func TestLoad_InvalidBool(t *testing.T) {
	t.Setenv("HALALAN_LOG_HTTP", "maybe")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid boolean")
	}
}
