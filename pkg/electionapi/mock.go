package electionapi

import (
	"context"
	"sync"

	"github.com/ejoven/halalan/internal/models"
)

// MockClient is a mock balloting service client for testing.
type MockClient struct {
	mu sync.Mutex

	positions  []models.Position
	candidates []models.Candidate
	tally      []models.TallyEntry
	myVotes    []models.VoteRecord
	election   models.ElectionStatus
	stats      models.AdminStats

	voterToken  string
	voter       models.Voter
	adminToken  string
	admin       models.Admin
	voterValid  bool
	adminValid  bool
	voteMessage string

	loginErr      error
	adminLoginErr error
	meErr         error
	adminMeErr    error
	logoutErr     error
	positionsErr  error
	candidatesErr error
	voteErr       error
	tallyErr      error
	myVotesErr    error
	electionErr   error
	statsErr      error

	// Call counters so tests can assert which network calls happened.
	VoteCalls   int
	TallyCalls  int
	LoginCalls  int
	LogoutCalls int
	MeCalls     int
}

// MockOption configures the mock client.
type MockOption func(*MockClient)

// WithPositions sets the positions to return.
func WithPositions(positions []models.Position) MockOption {
	return func(m *MockClient) { m.positions = positions }
}

// WithCandidates sets the candidates to return.
func WithCandidates(candidates []models.Candidate) MockOption {
	return func(m *MockClient) { m.candidates = candidates }
}

// WithTally sets the tally snapshot to return.
func WithTally(tally []models.TallyEntry) MockOption {
	return func(m *MockClient) { m.tally = tally }
}

// WithMyVotes sets the cast-vote records to return.
func WithMyVotes(votes []models.VoteRecord) MockOption {
	return func(m *MockClient) { m.myVotes = votes }
}

// WithVoterSession configures a successful voter login/restore result.
func WithVoterSession(token string, voter models.Voter) MockOption {
	return func(m *MockClient) {
		m.voterToken = token
		m.voter = voter
		m.voterValid = true
	}
}

// WithAdminSession configures a successful admin login/restore result.
func WithAdminSession(token string, admin models.Admin) MockOption {
	return func(m *MockClient) {
		m.adminToken = token
		m.admin = admin
		m.adminValid = true
	}
}

// WithElectionStatus sets the election status to return.
func WithElectionStatus(status models.ElectionStatus) MockOption {
	return func(m *MockClient) { m.election = status }
}

// WithAdminStats sets the turnout summary to return.
func WithAdminStats(stats models.AdminStats) MockOption {
	return func(m *MockClient) { m.stats = stats }
}

// WithLoginError sets an error to return from VoterLogin.
func WithLoginError(err error) MockOption {
	return func(m *MockClient) { m.loginErr = err }
}

// WithAdminLoginError sets an error to return from AdminLogin.
func WithAdminLoginError(err error) MockOption {
	return func(m *MockClient) { m.adminLoginErr = err }
}

// WithMeError sets an error to return from VoterMe.
func WithMeError(err error) MockOption {
	return func(m *MockClient) { m.meErr = err }
}

// WithAdminMeError sets an error to return from AdminMe.
func WithAdminMeError(err error) MockOption {
	return func(m *MockClient) { m.adminMeErr = err }
}

// WithLogoutError sets an error to return from the logout calls.
func WithLogoutError(err error) MockOption {
	return func(m *MockClient) { m.logoutErr = err }
}

// WithPositionsError sets an error to return from FetchPositions.
func WithPositionsError(err error) MockOption {
	return func(m *MockClient) { m.positionsErr = err }
}

// WithCandidatesError sets an error to return from FetchCandidates.
func WithCandidatesError(err error) MockOption {
	return func(m *MockClient) { m.candidatesErr = err }
}

// WithVoteError sets an error to return from CastVote.
func WithVoteError(err error) MockOption {
	return func(m *MockClient) { m.voteErr = err }
}

// WithTallyError sets an error to return from FetchTally.
func WithTallyError(err error) MockOption {
	return func(m *MockClient) { m.tallyErr = err }
}

// WithMyVotesError sets an error to return from FetchMyVotes.
func WithMyVotesError(err error) MockOption {
	return func(m *MockClient) { m.myVotesErr = err }
}

// WithElectionStatusError sets an error to return from ElectionStatus.
func WithElectionStatusError(err error) MockOption {
	return func(m *MockClient) { m.electionErr = err }
}

// WithAdminStatsError sets an error to return from AdminStats.
func WithAdminStatsError(err error) MockOption {
	return func(m *MockClient) { m.statsErr = err }
}

// NewMockClient creates a mock client pre-loaded with a small default
// ballot.
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		positions:   DefaultMockPositions(),
		candidates:  DefaultMockCandidates(),
		tally:       DefaultMockTally(),
		voteMessage: "Vote cast successfully!",
		election: models.ElectionStatus{
			HasElection: true,
			IsActive:    true,
			Name:        "2026 Student Council Election",
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultMockPositions returns the default ballot positions.
func DefaultMockPositions() []models.Position {
	return []models.Position{
		{ID: "1", Name: "President", Level: "Senior HS"},
		{ID: "2", Name: "Vice President", Level: "Senior HS"},
	}
}

// DefaultMockCandidates returns the default candidates.
func DefaultMockCandidates() []models.Candidate {
	return []models.Candidate{
		{ID: "7", FullName: "Maria Santos", Party: "Unity", Position: "1", PositionName: "President"},
		{ID: "8", FullName: "Jose Ramirez", Party: "Progress", Position: "1", PositionName: "President"},
		{ID: "9", FullName: "Ana Reyes", Party: "Unity", Position: "2", PositionName: "Vice President"},
	}
}

// DefaultMockTally returns the default tally snapshot.
func DefaultMockTally() []models.TallyEntry {
	return []models.TallyEntry{
		{
			PositionID: "1",
			Position:   "President",
			Level:      "Senior HS",
			Candidates: []models.TallyCandidate{
				{CandidateID: "7", FullName: "Maria Santos", Party: "Unity", Votes: 10},
				{CandidateID: "8", FullName: "Jose Ramirez", Party: "Progress", Votes: 5},
			},
		},
	}
}

// BaseURL returns a fixed mock URL.
func (m *MockClient) BaseURL() string {
	return "http://mock-balloting.local"
}

// SetTokenSource is a no-op on the mock.
func (m *MockClient) SetTokenSource(kind AuthKind, src TokenFunc) {}

// VoterLogin returns the configured voter session or error.
func (m *MockClient) VoterLogin(ctx context.Context, voterID, pin string) (string, models.Voter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls++
	if m.loginErr != nil {
		return "", models.Voter{}, m.loginErr
	}
	return m.voterToken, m.voter, nil
}

// VoterLogout returns the configured logout error, if any.
func (m *MockClient) VoterLogout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogoutCalls++
	return m.logoutErr
}

// VoterMe returns the configured voter identity.
func (m *MockClient) VoterMe(ctx context.Context) (models.Voter, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MeCalls++
	if m.meErr != nil {
		return models.Voter{}, false, m.meErr
	}
	return m.voter, m.voterValid, nil
}

// AdminLogin returns the configured admin session or error.
func (m *MockClient) AdminLogin(ctx context.Context, username, password string) (string, models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.adminLoginErr != nil {
		return "", models.Admin{}, m.adminLoginErr
	}
	return m.adminToken, m.admin, nil
}

// AdminLogout returns the configured logout error, if any.
func (m *MockClient) AdminLogout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logoutErr
}

// AdminMe returns the configured admin identity.
func (m *MockClient) AdminMe(ctx context.Context) (models.Admin, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.adminMeErr != nil {
		return models.Admin{}, false, m.adminMeErr
	}
	return m.admin, m.adminValid, nil
}

// FetchPositions returns the configured positions or error.
func (m *MockClient) FetchPositions(ctx context.Context) ([]models.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.positionsErr != nil {
		return nil, m.positionsErr
	}
	return m.positions, nil
}

// FetchCandidates returns the configured candidates or error.
func (m *MockClient) FetchCandidates(ctx context.Context) ([]models.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.candidatesErr != nil {
		return nil, m.candidatesErr
	}
	return m.candidates, nil
}

// CastVote records the call and returns the configured message or error.
func (m *MockClient) CastVote(ctx context.Context, positionID, candidateID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VoteCalls++
	if m.voteErr != nil {
		return "", m.voteErr
	}
	return m.voteMessage, nil
}

// FetchTally records the call and returns the configured tally or error.
func (m *MockClient) FetchTally(ctx context.Context) ([]models.TallyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TallyCalls++
	if m.tallyErr != nil {
		return nil, m.tallyErr
	}
	return m.tally, nil
}

// FetchMyVotes returns the configured vote records or error.
func (m *MockClient) FetchMyVotes(ctx context.Context) ([]models.VoteRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.myVotesErr != nil {
		return nil, m.myVotesErr
	}
	return m.myVotes, nil
}

// ElectionStatus returns the configured status or error.
func (m *MockClient) ElectionStatus(ctx context.Context) (models.ElectionStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.electionErr != nil {
		return models.ElectionStatus{}, m.electionErr
	}
	return m.election, nil
}

// AdminStats returns the configured stats or error.
func (m *MockClient) AdminStats(ctx context.Context) (models.AdminStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statsErr != nil {
		return models.AdminStats{}, m.statsErr
	}
	return m.stats, nil
}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)
