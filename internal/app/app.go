// Package app wires the kiosk gateway together and owns its startup
// sequence.
package app

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ejoven/halalan/internal/handlers"
	"github.com/ejoven/halalan/internal/logger"
	"github.com/ejoven/halalan/internal/repository"
	"github.com/ejoven/halalan/internal/services"
	"github.com/ejoven/halalan/internal/session"
	"github.com/ejoven/halalan/internal/websocket"
	"github.com/ejoven/halalan/pkg/electionapi"
)

// App holds all application dependencies
type App struct {
	log      logger.Logger
	handlers *handlers.Handlers
	repo     *repository.Repository

	voterSession *session.VoterStore
	adminSession *session.AdminStore
	catalog      *services.CatalogService
	tally        *services.TallyService
}

// New creates and initializes a new application instance
func New(log logger.Logger, dbPath string, apiClient electionapi.Client, templatesFS, staticFS fs.FS) (*App, error) {
	repo, err := repository.New(dbPath)
	if err != nil {
		return nil, err
	}

	// Session stores register themselves as the client's token sources.
	voterSession := session.NewVoterStore(log, apiClient, repo)
	adminSession := session.NewAdminStore(log, apiClient, repo)

	// Initialize services
	catalogService := services.NewCatalogService(log, apiClient)
	tallyService := services.NewTallyService(log, apiClient)
	votingService := services.NewVotingService(log, apiClient, voterSession, tallyService)
	adminService := services.NewAdminService(log, apiClient, adminSession, repo)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, tallyService)
	hub.Start()
	tallyService.SetBroadcaster(hub)

	// Create static file server
	staticServer := handlers.NewStaticServer(staticFS)

	h, err := handlers.New(
		catalogService,
		votingService,
		tallyService,
		adminService,
		voterSession,
		adminSession,
		templatesFS,
		staticServer,
		hub,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		log:          log,
		handlers:     h,
		repo:         repo,
		voterSession: voterSession,
		adminSession: adminSession,
		catalog:      catalogService,
		tally:        tallyService,
	}, nil
}

// Start runs the startup sequence against the balloting service. The
// catalog must load before anything renders; session restore and the
// initial tally are best-effort.
func (a *App) Start(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() { errCh <- a.catalog.LoadPositions(ctx) }()
	go func() { errCh <- a.catalog.LoadCandidates(ctx) }()
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	}

	// Restores never fail the startup: an invalid stored token just
	// leaves that session anonymous.
	done := make(chan struct{}, 2)
	go func() { a.voterSession.Restore(ctx); done <- struct{}{} }()
	go func() { a.adminSession.Restore(ctx); done <- struct{}{} }()
	<-done
	<-done

	if err := a.tally.Refresh(ctx); err != nil {
		a.log.Warn("Initial tally refresh failed", "error", err)
	}

	a.ensureKioskID(ctx)
	return nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close releases app resources
func (a *App) Close() {
	if a.repo != nil {
		_ = a.repo.Close()
	}
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	// Set default base URL if not configured, using detected LAN IP
	ip := getPreferredIP(realNetworkProvider{})
	port := addr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		port = addr[i:]
	}
	baseURL := fmt.Sprintf("http://%s%s", ip, port)
	a.setDefaultBaseURL(baseURL)

	a.log.Info("Kiosk starting", "url", baseURL)
	a.log.Info("Officer panel", "url", baseURL+"/admin")
	return http.ListenAndServe(addr, a.Router())
}

// ensureKioskID persists a stable identifier for this kiosk instance.
func (a *App) ensureKioskID(ctx context.Context) {
	existing, _ := a.repo.GetSetting(ctx, "kiosk_id")
	if existing != "" {
		return
	}
	id := uuid.NewString()
	if err := a.repo.SetSetting(ctx, "kiosk_id", id); err != nil {
		a.log.Warn("Failed to persist kiosk id", "error", err)
		return
	}
	a.log.Info("Kiosk id assigned", "id", id)
}

// setDefaultBaseURL sets the base URL setting if not already configured
// or if current value uses localhost (which isn't useful for QR codes)
func (a *App) setDefaultBaseURL(baseURL string) {
	ctx := context.Background()
	existing, _ := a.repo.GetSetting(ctx, "base_url")

	needsUpdate := existing == "" || strings.Contains(existing, "localhost")
	if needsUpdate {
		if err := a.repo.SetSetting(ctx, "base_url", baseURL); err != nil {
			a.log.Warn("Failed to set default base_url", "error", err)
		} else {
			a.log.Info("Default base URL set", "url", baseURL)
		}
	}
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider is an interface for getting network interfaces (for testing)
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the best IP address for LAN access.
// Prefers private network addresses, falls back to localhost.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP

	for _, iface := range ifaces {
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			if ip == nil || ip.To4() == nil || ip.IsLoopback() {
				continue
			}

			candidates = append(candidates, ip)
		}
	}

	for _, ip := range candidates {
		ipStr := ip.String()
		if strings.HasPrefix(ipStr, "192.168.") ||
			strings.HasPrefix(ipStr, "10.") ||
			isPrivate172(ip) {
			return ipStr
		}
	}

	if len(candidates) > 0 {
		return candidates[0].String()
	}

	return "localhost"
}

// isPrivate172 reports whether ip is in 172.16.0.0/12.
func isPrivate172(ip net.IP) bool {
	v4 := ip.To4()
	if v4 == nil {
		return false
	}
	return v4[0] == 172 && v4[1] >= 16 && v4[1] <= 31
}
