// Package electionapi provides a client for the remote balloting
// service the kiosk coordinates against.
package electionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ejoven/halalan/internal/logger"
	"github.com/ejoven/halalan/internal/models"
)

// AuthKind selects which credential header a request carries.
type AuthKind int

const (
	// AuthNone sends no credential header.
	AuthNone AuthKind = iota
	// AuthVoter sends the voter session token.
	AuthVoter
	// AuthAdmin sends the admin session token.
	AuthAdmin
)

// Credential headers used by the balloting service. Voter and admin
// tokens travel in distinct headers and are never sent together.
const (
	VoterTokenHeader = "X-Session-Token"
	AdminTokenHeader = "X-Admin-Token"
)

// TokenFunc returns the current token for one identity kind. It is
// invoked at call time so a token rotated between calls is honored.
type TokenFunc func() string

// RequestError is the single error kind the rest of the kiosk handles.
// Message carries the service-supplied error text when one was present.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Client defines the balloting service operations the kiosk uses.
type Client interface {
	// VoterLogin exchanges voter credentials for a session token.
	VoterLogin(ctx context.Context, voterID, pin string) (string, models.Voter, error)
	// VoterLogout ends the voter session on the service, best-effort.
	VoterLogout(ctx context.Context) error
	// VoterMe validates the current voter token and returns the identity.
	VoterMe(ctx context.Context) (models.Voter, bool, error)
	// AdminLogin exchanges admin credentials for a session token.
	AdminLogin(ctx context.Context, username, password string) (string, models.Admin, error)
	// AdminLogout ends the admin session on the service, best-effort.
	AdminLogout(ctx context.Context) error
	// AdminMe validates the current admin token and returns the identity.
	AdminMe(ctx context.Context) (models.Admin, bool, error)
	// FetchPositions retrieves all ballot positions.
	FetchPositions(ctx context.Context) ([]models.Position, error)
	// FetchCandidates retrieves all candidates.
	FetchCandidates(ctx context.Context) ([]models.Candidate, error)
	// CastVote submits one vote with the voter credential and returns
	// the service's confirmation message.
	CastVote(ctx context.Context, positionID, candidateID string) (string, error)
	// FetchTally retrieves the full tally snapshot.
	FetchTally(ctx context.Context) ([]models.TallyEntry, error)
	// FetchMyVotes lists the votes already cast by the current voter.
	FetchMyVotes(ctx context.Context) ([]models.VoteRecord, error)
	// ElectionStatus describes the currently configured election.
	ElectionStatus(ctx context.Context) (models.ElectionStatus, error)
	// AdminStats retrieves the turnout summary with the admin credential.
	AdminStats(ctx context.Context) (models.AdminStats, error)
	// SetTokenSource registers the token source for one identity kind.
	SetTokenSource(kind AuthKind, src TokenFunc)
	// BaseURL returns the configured service base URL.
	BaseURL() string
}

// HTTPClient is the real client for the balloting service.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
	voterToken TokenFunc
	adminToken TokenFunc
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// NewHTTPClientWithHTTPClient creates a client with a custom http.Client.
func NewHTTPClientWithHTTPClient(baseURL string, httpClient *http.Client, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log,
	}
}

// BaseURL returns the configured service base URL.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// SetTokenSource registers the token source for one identity kind.
// AuthNone is ignored.
func (c *HTTPClient) SetTokenSource(kind AuthKind, src TokenFunc) {
	switch kind {
	case AuthVoter:
		c.voterToken = src
	case AuthAdmin:
		c.adminToken = src
	}
}

// do executes one request against the service. The body is serialized
// only when non-nil. On a 2xx response the body is decoded into out;
// empty or unparseable success bodies are treated as an empty object.
// On any other status it returns a *RequestError carrying the service's
// error message when one was supplied.
func (c *HTTPClient) do(ctx context.Context, method, path string, auth AuthKind, body, out interface{}) error {
	reqURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Credential headers are read at call time, never cached, so a
	// token rotated between calls is always the one sent.
	switch auth {
	case AuthVoter:
		if c.voterToken != nil {
			if token := c.voterToken(); token != "" {
				req.Header.Set(VoterTokenHeader, token)
			}
		}
	case AuthAdmin:
		if c.adminToken != nil {
			if token := c.adminToken(); token != "" {
				req.Header.Set(AdminTokenHeader, token)
			}
		}
	}

	c.log.Debug("election API request", "method", method, "url", reqURL, "auth", auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Message: fmt.Sprintf("failed to reach balloting service: %v", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	c.log.Debug("election API response", "status", resp.StatusCode, "body", string(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(respBody, &failure)
		message := failure.Error
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return &RequestError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		// Some endpoints return empty or non-JSON bodies on success.
		c.log.Debug("ignoring unparseable success body", "error", err)
	}
	return nil
}

// VoterLogin exchanges voter credentials for a session token and identity.
func (c *HTTPClient) VoterLogin(ctx context.Context, voterID, pin string) (string, models.Voter, error) {
	var resp struct {
		Token string       `json:"token"`
		Voter models.Voter `json:"voter"`
	}
	creds := models.VoterCredentials{VoterID: voterID, PIN: pin}
	if err := c.do(ctx, http.MethodPost, "/login", AuthNone, creds, &resp); err != nil {
		return "", models.Voter{}, err
	}
	return resp.Token, resp.Voter, nil
}

// VoterLogout ends the voter session on the service.
func (c *HTTPClient) VoterLogout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", AuthVoter, nil, nil)
}

// VoterMe validates the current voter token. ok is false when the
// service reports the token invalid.
func (c *HTTPClient) VoterMe(ctx context.Context) (models.Voter, bool, error) {
	var resp struct {
		Authenticated bool         `json:"authenticated"`
		Voter         models.Voter `json:"voter"`
	}
	if err := c.do(ctx, http.MethodGet, "/me", AuthVoter, nil, &resp); err != nil {
		return models.Voter{}, false, err
	}
	return resp.Voter, resp.Authenticated, nil
}

// AdminLogin exchanges admin credentials for a session token and identity.
func (c *HTTPClient) AdminLogin(ctx context.Context, username, password string) (string, models.Admin, error) {
	var resp struct {
		Token string       `json:"token"`
		Admin models.Admin `json:"admin"`
	}
	creds := models.AdminCredentials{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/admin/login", AuthNone, creds, &resp); err != nil {
		return "", models.Admin{}, err
	}
	return resp.Token, resp.Admin, nil
}

// AdminLogout ends the admin session on the service.
func (c *HTTPClient) AdminLogout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/admin/logout", AuthAdmin, nil, nil)
}

// AdminMe validates the current admin token.
func (c *HTTPClient) AdminMe(ctx context.Context) (models.Admin, bool, error) {
	var resp struct {
		Authenticated bool         `json:"authenticated"`
		Admin         models.Admin `json:"admin"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/me", AuthAdmin, nil, &resp); err != nil {
		return models.Admin{}, false, err
	}
	return resp.Admin, resp.Authenticated, nil
}

// FetchPositions retrieves all ballot positions.
func (c *HTTPClient) FetchPositions(ctx context.Context) ([]models.Position, error) {
	var positions []models.Position
	if err := c.do(ctx, http.MethodGet, "/positions", AuthNone, nil, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// FetchCandidates retrieves all candidates.
func (c *HTTPClient) FetchCandidates(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := c.do(ctx, http.MethodGet, "/candidates", AuthNone, nil, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// voteRequest is the vote submission payload. Ids round-trip in the
// representation the service handed out (numbers stay numbers).
type voteRequest struct {
	PositionID  models.FlexID `json:"position_id"`
	CandidateID models.FlexID `json:"candidate_id"`
}

// CastVote submits one vote with the voter credential.
func (c *HTTPClient) CastVote(ctx context.Context, positionID, candidateID string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	body := voteRequest{
		PositionID:  models.FlexID(positionID),
		CandidateID: models.FlexID(candidateID),
	}
	if err := c.do(ctx, http.MethodPost, "/vote", AuthVoter, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// FetchTally retrieves the full tally snapshot.
func (c *HTTPClient) FetchTally(ctx context.Context) ([]models.TallyEntry, error) {
	var tally []models.TallyEntry
	if err := c.do(ctx, http.MethodGet, "/tally", AuthNone, nil, &tally); err != nil {
		return nil, err
	}
	return tally, nil
}

// FetchMyVotes lists the votes already cast by the current voter.
func (c *HTTPClient) FetchMyVotes(ctx context.Context) ([]models.VoteRecord, error) {
	var votes []models.VoteRecord
	if err := c.do(ctx, http.MethodGet, "/my-votes", AuthVoter, nil, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

// ElectionStatus describes the currently configured election.
func (c *HTTPClient) ElectionStatus(ctx context.Context) (models.ElectionStatus, error) {
	var status models.ElectionStatus
	if err := c.do(ctx, http.MethodGet, "/election/status", AuthNone, nil, &status); err != nil {
		return models.ElectionStatus{}, err
	}
	return status, nil
}

// AdminStats retrieves the turnout summary with the admin credential.
func (c *HTTPClient) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var stats models.AdminStats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", AuthAdmin, nil, &stats); err != nil {
		return models.AdminStats{}, err
	}
	return stats, nil
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
