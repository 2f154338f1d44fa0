// Package handlers serves the kiosk's browser panels and the JSON API
// they call. All UI-only state (active panel, status banner) lives in
// the browser; the handlers translate panel actions into session,
// catalog, voting, and tally operations.
package handlers

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/ejoven/halalan/internal/models"
	"github.com/ejoven/halalan/internal/services"
	"github.com/ejoven/halalan/internal/websocket"
)

// NewStaticServer creates a static file server from an fs.FS.
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// VoterSessionStore is the voter session surface the handlers use.
type VoterSessionStore interface {
	Identity() (models.Voter, bool)
	Login(ctx context.Context, creds models.VoterCredentials) (models.Voter, error)
	Logout(ctx context.Context)
}

// AdminSessionStore is the admin session surface the handlers use.
type AdminSessionStore interface {
	Identity() (models.Admin, bool)
	Login(ctx context.Context, creds models.AdminCredentials) (models.Admin, error)
	Logout(ctx context.Context)
}

// Templates holds all parsed HTML templates.
type Templates struct {
	Ballot *template.Template
	Admin  *template.Template
}

// Handlers holds all HTTP handler dependencies.
type Handlers struct {
	Catalog      services.CatalogServicer
	Voting       services.VotingServicer
	Tally        services.TallyServicer
	Admin        services.AdminServicer
	VoterSession VoterSessionStore
	AdminSession AdminSessionStore
	Hub          *websocket.Hub
	Log          HTTPLogger
	templates    *Templates
	staticServer http.Handler
}

// HTTPLogger is an interface for loggers that support HTTP logging control.
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a Handlers instance with all dependencies.
func New(
	catalog services.CatalogServicer,
	voting services.VotingServicer,
	tally services.TallyServicer,
	admin services.AdminServicer,
	voterSession VoterSessionStore,
	adminSession AdminSessionStore,
	templatesFS fs.FS,
	staticServer http.Handler,
	hub *websocket.Hub,
	log HTTPLogger,
) (*Handlers, error) {
	templates, err := loadTemplates(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Handlers{
		Catalog:      catalog,
		Voting:       voting,
		Tally:        tally,
		Admin:        admin,
		VoterSession: voterSession,
		AdminSession: adminSession,
		Hub:          hub,
		Log:          log,
		templates:    templates,
		staticServer: staticServer,
	}, nil
}

// NoopHTTPLogger is a test logger that never enables HTTP logging.
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance without templates or a hub
// (for testing the API endpoints).
func NewForTesting(
	catalog services.CatalogServicer,
	voting services.VotingServicer,
	tally services.TallyServicer,
	admin services.AdminServicer,
	voterSession VoterSessionStore,
	adminSession AdminSessionStore,
) *Handlers {
	return &Handlers{
		Catalog:      catalog,
		Voting:       voting,
		Tally:        tally,
		Admin:        admin,
		VoterSession: voterSession,
		AdminSession: adminSession,
		Log:          NoopHTTPLogger{},
		// templates left nil - API endpoints don't use templates
	}
}

// loadTemplates parses all templates once at startup.
func loadTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{}
	var err error

	if t.Ballot, err = template.ParseFS(templatesFS, "ballot.html"); err != nil {
		return nil, fmt.Errorf("ballot template: %w", err)
	}
	if t.Admin, err = template.ParseFS(templatesFS, "admin.html"); err != nil {
		return nil, fmt.Errorf("admin template: %w", err)
	}

	return t, nil
}
