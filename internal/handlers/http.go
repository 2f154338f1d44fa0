package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ejoven/halalan/internal/services"
	"github.com/ejoven/halalan/pkg/electionapi"
)

// APIError is the JSON error body returned by all API endpoints.
type APIError struct {
	Error string `json:"error"`
}

// respondJSON writes v as JSON with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondOK writes v as JSON with a 200 status.
func respondOK(w http.ResponseWriter, v any) {
	respondJSON(w, http.StatusOK, v)
}

// respondError maps err to an HTTP status and writes the error body.
func respondError(w http.ResponseWriter, err error) {
	status, message := toStatus(err)
	respondJSON(w, status, APIError{Error: message})
}

// toStatus maps service and upstream errors to HTTP codes. Precondition
// failures map to client errors; upstream errors keep their status so
// the browser sees what the balloting service said.
func toStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated),
		errors.Is(err, services.ErrAdminRequired):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrIncompleteSelection):
		return http.StatusBadRequest, err.Error()
	}

	var reqErr *electionapi.RequestError
	if errors.As(err, &reqErr) {
		status := reqErr.Status
		if status < 400 {
			status = http.StatusBadGateway
		}
		return status, reqErr.Message
	}

	return http.StatusBadGateway, err.Error()
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// respondBadRequest writes a 400 with the given message.
func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, APIError{Error: message})
}
