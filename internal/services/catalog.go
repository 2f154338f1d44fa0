package services

import (
	"context"
	"sync"

	"github.com/ejoven/halalan/internal/logger"
	"github.com/ejoven/halalan/internal/models"
	"github.com/ejoven/halalan/pkg/electionapi"
)

// CatalogService holds the kiosk's read-only snapshot of the ballot:
// positions and candidates. Loads replace the prior snapshot wholesale;
// there is no incremental diffing.
type CatalogService struct {
	log logger.Logger
	api electionapi.Client

	mu         sync.RWMutex
	positions  []models.Position
	candidates []models.Candidate
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(log logger.Logger, api electionapi.Client) *CatalogService {
	return &CatalogService{log: log, api: api}
}

// LoadPositions fetches all positions, replacing the local snapshot.
// Idempotent and safe to call repeatedly.
func (s *CatalogService) LoadPositions(ctx context.Context) error {
	positions, err := s.api.FetchPositions(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.positions = positions
	s.mu.Unlock()

	s.log.Debug("positions loaded", "count", len(positions))
	return nil
}

// LoadCandidates fetches all candidates, replacing the local snapshot.
func (s *CatalogService) LoadCandidates(ctx context.Context) error {
	candidates, err := s.api.FetchCandidates(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.candidates = candidates
	s.mu.Unlock()

	s.log.Debug("candidates loaded", "count", len(candidates))
	return nil
}

// Positions returns the current position snapshot.
func (s *CatalogService) Positions() []models.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positions
}

// Candidates returns the current candidate snapshot.
func (s *CatalogService) Candidates() []models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.candidates
}

// CandidatesForPosition filters the candidate snapshot by position id.
// Ids compare by value regardless of representation: selection inputs
// arrive as opaque form strings while catalog ids arrive as typed
// primitives from the service, so "1" and 1 filter identically.
func (s *CatalogService) CandidatesForPosition(positionID string) []models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []models.Candidate
	for _, c := range s.candidates {
		if c.Position.Equals(positionID) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// ElectionStatus fetches the current election description. Not
// snapshotted; the panel header re-reads it on demand.
func (s *CatalogService) ElectionStatus(ctx context.Context) (models.ElectionStatus, error) {
	return s.api.ElectionStatus(ctx)
}
