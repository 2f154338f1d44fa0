package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ejoven/halalan/internal/models"
	"github.com/ejoven/halalan/pkg/electionapi"
)

// recordingBroadcaster captures BroadcastTally calls.
type recordingBroadcaster struct {
	calls   int
	lastLen int
}

func (b *recordingBroadcaster) BroadcastTally(entries []models.TallyEntry) {
	b.calls++
	b.lastLen = len(entries)
}

func TestTallyService_Refresh_RelativePercentages(t *testing.T) {
	// Leader has 10 votes, runner-up 5: the leader shows 100 and the
	// runner-up 50, regardless of total votes cast.
	api := electionapi.NewMockClient()
	tally := NewTallyService(noopLogger{}, api)

	if err := tally.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	results := tally.Results()
	if len(results) != 1 {
		t.Fatalf("expected 1 position, got %d", len(results))
	}
	candidates := results[0].Candidates
	if candidates[0].Percent != 100 {
		t.Errorf("leader should show 100, got %d", candidates[0].Percent)
	}
	if candidates[1].Percent != 50 {
		t.Errorf("runner-up should show 50, got %d", candidates[1].Percent)
	}
}

func TestTallyService_Refresh_ZeroVotes(t *testing.T) {
	api := electionapi.NewMockClient(electionapi.WithTally([]models.TallyEntry{
		{
			PositionID: "1",
			Position:   "President",
			Candidates: []models.TallyCandidate{
				{CandidateID: "7", FullName: "Maria Santos", Votes: 0},
				{CandidateID: "8", FullName: "Jose Ramirez", Votes: 0},
			},
		},
	}))
	tally := NewTallyService(noopLogger{}, api)

	if err := tally.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	for _, c := range tally.Results()[0].Candidates {
		if c.Percent != 0 {
			t.Errorf("candidate %s should show 0 before any votes, got %d", c.FullName, c.Percent)
		}
	}
}

func TestTallyService_Refresh_Rounding(t *testing.T) {
	api := electionapi.NewMockClient(electionapi.WithTally([]models.TallyEntry{
		{
			PositionID: "1",
			Position:   "President",
			Candidates: []models.TallyCandidate{
				{CandidateID: "7", Votes: 8},
				{CandidateID: "8", Votes: 1}, // 12.5% rounds up to 13
				{CandidateID: "9", Votes: 2}, // 25%
			},
		},
	}))
	tally := NewTallyService(noopLogger{}, api)

	if err := tally.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	percents := map[string]int{}
	for _, c := range tally.Results()[0].Candidates {
		percents[c.CandidateID.String()] = c.Percent
	}
	if percents["7"] != 100 || percents["8"] != 13 || percents["9"] != 25 {
		t.Errorf("unexpected percentages: %v", percents)
	}
}

// flakyTallyClient succeeds on the first fetch and fails afterwards.
type flakyTallyClient struct {
	*electionapi.MockClient
	fetches int
}

func (f *flakyTallyClient) FetchTally(ctx context.Context) ([]models.TallyEntry, error) {
	f.fetches++
	if f.fetches > 1 {
		return nil, errors.New("service unreachable")
	}
	return f.MockClient.FetchTally(ctx)
}

func TestTallyService_Refresh_ErrorKeepsSnapshot(t *testing.T) {
	api := &flakyTallyClient{MockClient: electionapi.NewMockClient()}
	tally := NewTallyService(noopLogger{}, api)

	ctx := context.Background()
	if err := tally.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if err := tally.Refresh(ctx); err == nil {
		t.Fatal("expected error from failed refresh")
	}
	if len(tally.Results()) != 1 {
		t.Error("failed refresh must keep the prior snapshot")
	}
}

func TestTallyService_Percentage(t *testing.T) {
	api := electionapi.NewMockClient()
	tally := NewTallyService(noopLogger{}, api)

	if err := tally.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if got := tally.Percentage("1", "8"); got != 50 {
		t.Errorf("expected 50, got %d", got)
	}
	if got := tally.Percentage("1", "999"); got != 0 {
		t.Errorf("expected 0 for unknown candidate, got %d", got)
	}
	if got := tally.Percentage("999", "7"); got != 0 {
		t.Errorf("expected 0 for unknown position, got %d", got)
	}
}

func TestTallyService_Refresh_Broadcasts(t *testing.T) {
	api := electionapi.NewMockClient()
	tally := NewTallyService(noopLogger{}, api)
	broadcaster := &recordingBroadcaster{}
	tally.SetBroadcaster(broadcaster)

	if err := tally.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if broadcaster.calls != 1 {
		t.Errorf("expected 1 broadcast, got %d", broadcaster.calls)
	}
	if broadcaster.lastLen != 1 {
		t.Errorf("expected broadcast of 1 position, got %d", broadcaster.lastLen)
	}
}
