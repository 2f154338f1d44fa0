package services

import (
	"context"
	"strings"

	"github.com/ejoven/halalan/internal/logger"
	"github.com/ejoven/halalan/internal/models"
	"github.com/ejoven/halalan/pkg/electionapi"
)

// VoterSession is the slice of the voter session store the voting
// workflow needs.
type VoterSession interface {
	Identity() (models.Voter, bool)
	Update(fn func(*models.Voter))
}

// TallyRefresher triggers a tally refresh after a successful vote.
type TallyRefresher interface {
	Refresh(ctx context.Context) error
}

// VotingService coordinates the one-shot vote submission workflow.
type VotingService struct {
	log     logger.Logger
	api     electionapi.Client
	session VoterSession
	tally   TallyRefresher
}

// NewVotingService creates a new VotingService.
func NewVotingService(log logger.Logger, api electionapi.Client, session VoterSession, tally TallyRefresher) *VotingService {
	return &VotingService{
		log:     log,
		api:     api,
		session: session,
		tally:   tally,
	}
}

// CastVote submits one vote. Preconditions are checked in order and the
// first failure wins, with no network call made:
//  1. the voter session must be authenticated,
//  2. both selections must be non-empty.
//
// On success the local has_voted flag flips true (it never flips back)
// and exactly one tally refresh is triggered so the visible results
// include the just-cast vote. On failure nothing mutates and the
// service's message is returned unchanged.
//
// One-vote-per-position enforcement beyond the boolean flag is the
// service's job; two rapid submissions before the flag flips are
// resolved by its idempotency, not here.
func (s *VotingService) CastVote(ctx context.Context, positionID, candidateID string) (string, error) {
	if _, ok := s.session.Identity(); !ok {
		return "", ErrNotAuthenticated
	}
	if strings.TrimSpace(positionID) == "" || strings.TrimSpace(candidateID) == "" {
		return "", ErrIncompleteSelection
	}

	message, err := s.api.CastVote(ctx, positionID, candidateID)
	if err != nil {
		return "", err
	}

	s.session.Update(func(v *models.Voter) {
		v.HasVoted = true
	})
	s.log.Info("vote cast", "position_id", positionID, "candidate_id", candidateID)

	if err := s.tally.Refresh(ctx); err != nil {
		// The vote itself succeeded; stale results are tolerable.
		s.log.Warn("tally refresh after vote failed", "error", err)
	}

	return message, nil
}

// MyVotes lists the votes the authenticated voter has already cast.
func (s *VotingService) MyVotes(ctx context.Context) ([]models.VoteRecord, error) {
	if _, ok := s.session.Identity(); !ok {
		return nil, ErrNotAuthenticated
	}
	return s.api.FetchMyVotes(ctx)
}
