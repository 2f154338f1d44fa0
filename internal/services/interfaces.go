package services

import (
	"context"

	"github.com/ejoven/halalan/internal/models"
)

// CatalogServicer defines catalog operations for handlers.
type CatalogServicer interface {
	LoadPositions(ctx context.Context) error
	LoadCandidates(ctx context.Context) error
	Positions() []models.Position
	Candidates() []models.Candidate
	CandidatesForPosition(positionID string) []models.Candidate
	ElectionStatus(ctx context.Context) (models.ElectionStatus, error)
}

// VotingServicer defines voting operations for handlers.
type VotingServicer interface {
	CastVote(ctx context.Context, positionID, candidateID string) (string, error)
	MyVotes(ctx context.Context) ([]models.VoteRecord, error)
}

// TallyServicer defines tally operations for handlers.
type TallyServicer interface {
	Refresh(ctx context.Context) error
	Results() []models.TallyEntry
	Percentage(positionID, candidateID string) int
}

// AdminServicer defines admin-panel operations for handlers.
type AdminServicer interface {
	Stats(ctx context.Context) (models.AdminStats, error)
	KioskQR(ctx context.Context) ([]byte, error)
}

// Ensure the services implement their interfaces
var (
	_ CatalogServicer = (*CatalogService)(nil)
	_ VotingServicer  = (*VotingService)(nil)
	_ TallyServicer   = (*TallyService)(nil)
	_ AdminServicer   = (*AdminService)(nil)
)
