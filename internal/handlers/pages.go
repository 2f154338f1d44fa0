package handlers

import (
	"net/http"
)

// ballotPageData feeds the voter panel template.
type ballotPageData struct {
	Title string
}

// adminPageData feeds the officer panel template.
type adminPageData struct {
	Title string
}

// handleBallotPage serves the voter panel.
// GET /
func (h *Handlers) handleBallotPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Ballot.Execute(w, ballotPageData{Title: "Halalan Kiosk"}); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// handleAdminPage serves the election officer panel.
// GET /admin
func (h *Handlers) handleAdminPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Admin.Execute(w, adminPageData{Title: "Halalan Officer Panel"}); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// handleWebSocket upgrades the connection and registers it with the hub.
// GET /ws
func (h *Handlers) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.Hub.ServeWs(w, r)
}
