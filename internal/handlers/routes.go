package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Static files (served from embedded filesystem)
	if h.staticServer != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))
	}

	// Panels
	if h.templates != nil {
		r.Get("/", h.handleBallotPage)
		r.Get("/admin", h.handleAdminPage)
	}

	// WebSocket tally feed
	if h.Hub != nil {
		r.Get("/ws", h.handleWebSocket)
	}

	// Voter session
	r.Get("/api/session", h.handleVoterSession)
	r.Post("/api/session/login", h.handleVoterLogin)
	r.Post("/api/session/logout", h.handleVoterLogout)

	// Admin session (login itself is public)
	r.Get("/api/admin/session", h.handleAdminSession)
	r.Post("/api/admin/session/login", h.handleAdminLogin)
	r.Post("/api/admin/session/logout", h.handleAdminLogout)

	// Ballot API (public reads, authenticated writes enforced in services)
	r.Get("/api/election", h.handleElectionStatus)
	r.Get("/api/positions", h.handlePositions)
	r.Get("/api/candidates", h.handleCandidates)
	r.Post("/api/vote", h.handleVote)
	r.Get("/api/tally", h.handleTally)
	r.Post("/api/tally/refresh", h.handleTallyRefresh)
	r.Get("/api/my-votes", h.handleMyVotes)

	// Admin API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAdminSession)
		r.Get("/api/admin/stats", h.handleAdminStats)
		r.Get("/api/admin/kiosk-qr", h.handleKioskQR)
	})

	return r
}
