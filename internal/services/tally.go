package services

import (
	"context"
	"math"
	"sync"

	"github.com/ejoven/halalan/internal/logger"
	"github.com/ejoven/halalan/internal/models"
	"github.com/ejoven/halalan/pkg/electionapi"
)

// Broadcaster pushes tally updates to connected browser panels.
type Broadcaster interface {
	BroadcastTally(entries []models.TallyEntry)
}

// TallyService owns the aggregated results snapshot and the derived
// per-candidate percentages.
type TallyService struct {
	log logger.Logger
	api electionapi.Client

	mu      sync.RWMutex
	entries []models.TallyEntry

	broadcaster Broadcaster
}

// NewTallyService creates a new TallyService.
func NewTallyService(log logger.Logger, api electionapi.Client) *TallyService {
	return &TallyService{log: log, api: api}
}

// SetBroadcaster wires the websocket hub in after construction.
func (s *TallyService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Refresh fetches the full tally and replaces the prior snapshot
// wholesale, recomputing every percentage. Never merges or patches.
func (s *TallyService) Refresh(ctx context.Context) error {
	fetched, err := s.api.FetchTally(ctx)
	if err != nil {
		return err
	}

	entries := derivePercentages(fetched)

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	s.log.Debug("tally refreshed", "positions", len(entries))

	if s.broadcaster != nil {
		s.broadcaster.BroadcastTally(entries)
	}
	return nil
}

// Results returns the current snapshot with percentages filled.
func (s *TallyService) Results() []models.TallyEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

// Percentage returns the derived percentage for one candidate within a
// position, 0 when either id is unknown.
func (s *TallyService) Percentage(positionID, candidateID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if !entry.PositionID.Equals(positionID) {
			continue
		}
		for _, c := range entry.Candidates {
			if c.CandidateID.Equals(candidateID) {
				return c.Percent
			}
		}
	}
	return 0
}

// derivePercentages computes each candidate's percentage relative to
// the position's leading vote count: the winner always shows 100. This
// is a bar-chart indicator, deliberately not a share-of-total figure.
func derivePercentages(fetched []models.TallyEntry) []models.TallyEntry {
	entries := make([]models.TallyEntry, len(fetched))
	for i, entry := range fetched {
		max := 0
		for _, c := range entry.Candidates {
			if c.Votes > max {
				max = c.Votes
			}
		}

		candidates := make([]models.TallyCandidate, len(entry.Candidates))
		for j, c := range entry.Candidates {
			c.Percent = relativePercent(c.Votes, max)
			candidates[j] = c
		}

		entry.Candidates = candidates
		entries[i] = entry
	}
	return entries
}

// relativePercent rounds votes/max*100 half away from zero. A position
// where nobody has votes yet shows 0 for everyone.
func relativePercent(votes, max int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(float64(votes) / float64(max) * 100))
}
