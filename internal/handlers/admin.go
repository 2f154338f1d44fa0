package handlers

import (
	"net/http"
)

// RequireAdminSession rejects API requests without an authenticated
// election officer session.
func (h *Handlers) RequireAdminSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := h.AdminSession.Identity(); !ok {
			respondJSON(w, http.StatusUnauthorized, APIError{Error: "admin authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleAdminStats returns turnout statistics.
// GET /api/admin/stats
func (h *Handlers) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Admin.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}

// handleKioskQR serves a QR code pointing voters at this kiosk.
// GET /api/admin/kiosk-qr
func (h *Handlers) handleKioskQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Admin.KioskQR(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
