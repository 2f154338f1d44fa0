package handlers

import (
	"net/http"

	"github.com/ejoven/halalan/internal/models"
)

// SessionResponse reports the current session state to the browser.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Voter         *models.Voter `json:"voter,omitempty"`
}

// AdminSessionResponse reports the current admin session state.
type AdminSessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Admin         *models.Admin `json:"admin,omitempty"`
}

// handleVoterSession returns the current voter session.
// GET /api/session
func (h *Handlers) handleVoterSession(w http.ResponseWriter, r *http.Request) {
	voter, ok := h.VoterSession.Identity()
	if !ok {
		respondOK(w, SessionResponse{Authenticated: false})
		return
	}
	respondOK(w, SessionResponse{Authenticated: true, Voter: &voter})
}

// handleVoterLogin authenticates a voter with the balloting service.
// POST /api/session/login
func (h *Handlers) handleVoterLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.VoterCredentials
	if err := decodeJSON(r, &creds); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if creds.VoterID == "" || creds.PIN == "" {
		respondBadRequest(w, "voter_id and pin are required")
		return
	}

	voter, err := h.VoterSession.Login(r.Context(), creds)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, SessionResponse{Authenticated: true, Voter: &voter})
}

// handleVoterLogout ends the voter session.
// POST /api/session/logout
func (h *Handlers) handleVoterLogout(w http.ResponseWriter, r *http.Request) {
	h.VoterSession.Logout(r.Context())
	respondOK(w, SessionResponse{Authenticated: false})
}

// handleAdminSession returns the current admin session.
// GET /api/admin/session
func (h *Handlers) handleAdminSession(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.AdminSession.Identity()
	if !ok {
		respondOK(w, AdminSessionResponse{Authenticated: false})
		return
	}
	respondOK(w, AdminSessionResponse{Authenticated: true, Admin: &admin})
}

// handleAdminLogin authenticates an election officer.
// POST /api/admin/session/login
func (h *Handlers) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.AdminCredentials
	if err := decodeJSON(r, &creds); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if creds.Username == "" || creds.Password == "" {
		respondBadRequest(w, "username and password are required")
		return
	}

	admin, err := h.AdminSession.Login(r.Context(), creds)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, AdminSessionResponse{Authenticated: true, Admin: &admin})
}

// handleAdminLogout ends the admin session.
// POST /api/admin/session/logout
func (h *Handlers) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	h.AdminSession.Logout(r.Context())
	respondOK(w, AdminSessionResponse{Authenticated: false})
}
