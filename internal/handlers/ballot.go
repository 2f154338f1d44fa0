package handlers

import (
	"net/http"

	"github.com/ejoven/halalan/internal/models"
)

// VoteRequest is the browser's ballot submission. The ids arrive as
// whatever type the catalog JSON carried, so both fields tolerate
// strings and numbers.
type VoteRequest struct {
	PositionID  models.FlexID `json:"position_id"`
	CandidateID models.FlexID `json:"candidate_id"`
}

// VoteResponse confirms a recorded ballot.
type VoteResponse struct {
	Message string       `json:"message"`
	Voter   models.Voter `json:"voter"`
}

// handlePositions returns the loaded contest positions.
// GET /api/positions
func (h *Handlers) handlePositions(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Catalog.Positions())
}

// handleCandidates returns candidates, filtered by ?position= when set.
// GET /api/candidates
func (h *Handlers) handleCandidates(w http.ResponseWriter, r *http.Request) {
	positionID := r.URL.Query().Get("position")
	if positionID == "" {
		respondOK(w, h.Catalog.Candidates())
		return
	}
	respondOK(w, h.Catalog.CandidatesForPosition(positionID))
}

// handleVote casts a ballot for the authenticated voter.
// POST /api/vote
func (h *Handlers) handleVote(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	message, err := h.Voting.CastVote(r.Context(), req.PositionID.String(), req.CandidateID.String())
	if err != nil {
		respondError(w, err)
		return
	}

	voter, _ := h.VoterSession.Identity()
	respondOK(w, VoteResponse{Message: message, Voter: voter})
}

// handleTally returns the current tally with relative percentages.
// GET /api/tally
func (h *Handlers) handleTally(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Tally.Results())
}

// handleTallyRefresh re-fetches the tally from the balloting service.
// POST /api/tally/refresh
func (h *Handlers) handleTallyRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Tally.Refresh(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.Tally.Results())
}

// handleMyVotes returns the authenticated voter's ballot receipt.
// GET /api/my-votes
func (h *Handlers) handleMyVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.Voting.MyVotes(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, votes)
}

// handleElectionStatus returns the election window state.
// GET /api/election
func (h *Handlers) handleElectionStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Catalog.ElectionStatus(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, status)
}
