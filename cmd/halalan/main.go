package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/ejoven/halalan/internal/app"
	"github.com/ejoven/halalan/internal/config"
	"github.com/ejoven/halalan/internal/logger"
	"github.com/ejoven/halalan/pkg/electionapi"
	"github.com/ejoven/halalan/web"
)

var (
	version = "dev"
)

// openBrowser opens url in the platform's default browser.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	addr := flag.String("addr", cfg.Addr, "Local address the kiosk listens on")
	apiURL := flag.String("api", cfg.APIURL, "Base URL of the balloting service")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	logLevel := flag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	logHTTP := flag.Bool("loghttp", cfg.LogHTTP, "Log every HTTP request")
	openPanel := flag.Bool("open", false, "Open the voter panel in a browser on startup")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Halalan - Election Kiosk Gateway

Usage:
  halalan [options]

Options:
  -addr string     Local listen address (default %q)
  -api string      Balloting service base URL (default %q)
  -db string       SQLite database path (default %q)
  -loglevel str    Log level: debug, info, warn, error (default %q)
  -loghttp         Log every HTTP request
  -open            Open the voter panel in a browser on startup
  -version         Show version and exit
  -help            Show this help message

Each option can also be set with HALALAN_ADDR, HALALAN_API_URL,
HALALAN_DB, HALALAN_LOG_LEVEL, and HALALAN_LOG_HTTP.

Examples:
  halalan                                  # Defaults, balloting service on localhost
  halalan -api https://comelec.example/api # Point at a remote balloting service
  halalan -addr :80 -db /data/kiosk.db     # Production example

`, cfg.Addr, cfg.APIURL, cfg.DBPath, cfg.LogLevel)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("halalan %s\n", version)
		os.Exit(0)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))
	if *logHTTP {
		appLog.EnableHTTPLogging()
	}

	apiClient := electionapi.NewHTTPClient(*apiURL, appLog)

	a, err := app.New(appLog, *dbPath, apiClient, web.GetTemplatesFS(), web.GetStaticFS())
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	// Load the catalog and restore sessions before serving anything.
	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := a.Start(startCtx); err != nil {
		cancel()
		log.Fatal("Failed to reach balloting service:", err)
	}
	cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run(*addr)
	}()

	if *openPanel {
		// Give the listener a moment before pointing a browser at it.
		time.Sleep(100 * time.Millisecond)
		url := fmt.Sprintf("http://%s/", *addr)
		if err := openBrowser(url); err != nil {
			appLog.Warn("Failed to open browser", "error", err)
		}
	}

	if err := <-serverErr; err != nil {
		log.Fatal(err)
	}
}
