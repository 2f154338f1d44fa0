package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ejoven/halalan/internal/models"
	"github.com/ejoven/halalan/pkg/electionapi"
)

// fakeVoterSession is a scriptable VoterSession.
type fakeVoterSession struct {
	voter  models.Voter
	authed bool
}

func (f *fakeVoterSession) Identity() (models.Voter, bool) {
	if !f.authed {
		return models.Voter{}, false
	}
	return f.voter, true
}

func (f *fakeVoterSession) Update(fn func(*models.Voter)) {
	if f.authed {
		fn(&f.voter)
	}
}

func newVotingFixture(api electionapi.Client, authed bool) (*VotingService, *fakeVoterSession) {
	session := &fakeVoterSession{
		voter:  models.Voter{VoterID: "2026-00123", Name: "Maria Santos"},
		authed: authed,
	}
	tally := NewTallyService(noopLogger{}, api)
	return NewVotingService(noopLogger{}, api, session, tally), session
}

func TestVotingService_CastVote_NotAuthenticated(t *testing.T) {
	api := electionapi.NewMockClient()
	voting, _ := newVotingFixture(api, false)

	_, err := voting.CastVote(context.Background(), "1", "7")
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if api.VoteCalls != 0 {
		t.Errorf("precondition failure must not reach the network, got %d calls", api.VoteCalls)
	}
	if api.TallyCalls != 0 {
		t.Errorf("no tally refresh expected, got %d", api.TallyCalls)
	}
}

func TestVotingService_CastVote_IncompleteSelection(t *testing.T) {
	api := electionapi.NewMockClient()
	voting, _ := newVotingFixture(api, true)

	cases := []struct {
		name                    string
		positionID, candidateID string
	}{
		{"missing candidate", "1", ""},
		{"missing position", "", "7"},
		{"both missing", "", ""},
		{"whitespace only", "  ", "7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := voting.CastVote(context.Background(), tc.positionID, tc.candidateID)
			if !errors.Is(err, ErrIncompleteSelection) {
				t.Fatalf("expected ErrIncompleteSelection, got %v", err)
			}
		})
	}
	if api.VoteCalls != 0 {
		t.Errorf("precondition failures must not reach the network, got %d calls", api.VoteCalls)
	}
}

func TestVotingService_CastVote_AuthCheckedBeforeSelection(t *testing.T) {
	api := electionapi.NewMockClient()
	voting, _ := newVotingFixture(api, false)

	// Both preconditions fail; authentication wins.
	_, err := voting.CastVote(context.Background(), "", "")
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated to take precedence, got %v", err)
	}
}

func TestVotingService_CastVote_Success(t *testing.T) {
	api := electionapi.NewMockClient()
	voting, session := newVotingFixture(api, true)

	message, err := voting.CastVote(context.Background(), "1", "7")
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if message != "Vote cast successfully!" {
		t.Errorf("expected service message passed through, got %q", message)
	}
	if !session.voter.HasVoted {
		t.Error("expected has_voted to flip true")
	}
	if api.VoteCalls != 1 {
		t.Errorf("expected exactly 1 vote call, got %d", api.VoteCalls)
	}
	if api.TallyCalls != 1 {
		t.Errorf("expected exactly 1 tally refresh, got %d", api.TallyCalls)
	}
}

func TestVotingService_CastVote_ServiceRejection(t *testing.T) {
	rejection := &electionapi.RequestError{Status: 403, Message: "You have already voted"}
	api := electionapi.NewMockClient(electionapi.WithVoteError(rejection))
	voting, session := newVotingFixture(api, true)

	_, err := voting.CastVote(context.Background(), "1", "7")
	if !errors.Is(err, rejection) {
		t.Fatalf("expected service rejection passed through, got %v", err)
	}
	if session.voter.HasVoted {
		t.Error("failed vote must not flip has_voted")
	}
	if api.TallyCalls != 0 {
		t.Errorf("failed vote must not refresh the tally, got %d", api.TallyCalls)
	}
}

func TestVotingService_CastVote_TallyRefreshFailureTolerated(t *testing.T) {
	api := electionapi.NewMockClient(
		electionapi.WithTallyError(errors.New("service unreachable")),
	)
	voting, session := newVotingFixture(api, true)

	message, err := voting.CastVote(context.Background(), "1", "7")
	if err != nil {
		t.Fatalf("vote succeeded, refresh failure must not surface: %v", err)
	}
	if message == "" {
		t.Error("expected the confirmation message")
	}
	if !session.voter.HasVoted {
		t.Error("expected has_voted flipped despite stale tally")
	}
}

func TestVotingService_MyVotes(t *testing.T) {
	records := []models.VoteRecord{
		{Position: "President", Candidate: "Maria Santos"},
	}
	api := electionapi.NewMockClient(electionapi.WithMyVotes(records))

	voting, _ := newVotingFixture(api, false)
	if _, err := voting.MyVotes(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	voting, _ = newVotingFixture(api, true)
	votes, err := voting.MyVotes(context.Background())
	if err != nil {
		t.Fatalf("MyVotes failed: %v", err)
	}
	if len(votes) != 1 || votes[0].Candidate != "Maria Santos" {
		t.Errorf("unexpected votes: %+v", votes)
	}
}
