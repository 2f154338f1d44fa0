// Package models defines the kiosk's view of the balloting service's
// entities plus the messages pushed to connected browser panels.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlexID is an entity id that can be unmarshaled from either a JSON
// number or a JSON string. The balloting service returns ids as numbers
// while browser form values arrive as strings; FlexID lets the two
// compare by value.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler for FlexID.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexID(n.String())
		return nil
	}

	return fmt.Errorf("FlexID: cannot unmarshal %s", string(data))
}

// MarshalJSON emits a bare number when the id is numeric so the service
// sees the same representation it handed out, and a string otherwise.
func (f FlexID) MarshalJSON() ([]byte, error) {
	s := string(f)
	if s == "" {
		return []byte(`""`), nil
	}
	var n json.Number
	if err := json.Unmarshal([]byte(s), &n); err == nil && !strings.ContainsAny(s, " \t") {
		return []byte(n.String()), nil
	}
	return json.Marshal(s)
}

// String returns the canonical string form.
func (f FlexID) String() string {
	return string(f)
}

// Equals reports whether the id denotes the same entity as the given
// raw value, comparing canonical string forms.
func (f FlexID) Equals(raw string) bool {
	return string(f) == strings.TrimSpace(raw)
}

// Voter is the identity record returned by the voter login and "me"
// endpoints.
type Voter struct {
	VoterID  string `json:"voter_id"`
	Name     string `json:"name"`
	HasVoted bool   `json:"has_voted"`
}

// Admin is the identity record returned by the admin login and "me"
// endpoints.
type Admin struct {
	Username    string `json:"username"`
	Name        string `json:"full_name"`
	IsSuperuser bool   `json:"is_superuser"`
}

// VoterCredentials is the voter login payload.
type VoterCredentials struct {
	VoterID string `json:"voter_id"`
	PIN     string `json:"pin"`
}

// AdminCredentials is the admin login payload.
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Position is an elected office on the ballot. Immutable once loaded.
type Position struct {
	ID    FlexID `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Candidate runs for exactly one position.
type Candidate struct {
	ID           FlexID `json:"id"`
	FullName     string `json:"full_name"`
	Party        string `json:"party,omitempty"`
	Bio          string `json:"bio,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	Position     FlexID `json:"position"`
	PositionName string `json:"position_name,omitempty"`
}

// TallyCandidate is a candidate's aggregated vote count within a
// position, plus the kiosk-derived relative percentage.
type TallyCandidate struct {
	CandidateID FlexID `json:"candidate_id"`
	FullName    string `json:"full_name"`
	Party       string `json:"party,omitempty"`
	Votes       int    `json:"votes"`
	Percent     int    `json:"percent"`
}

// TallyEntry is the aggregated result for one position. Entries are
// replaced wholesale on every refresh, never patched.
type TallyEntry struct {
	PositionID FlexID           `json:"position_id"`
	Position   string           `json:"position"`
	Level      string           `json:"level,omitempty"`
	Candidates []TallyCandidate `json:"candidates"`
}

// VoteRecord is one vote already cast by the authenticated voter.
type VoteRecord struct {
	PositionID  FlexID `json:"position_id"`
	Position    string `json:"position"`
	CandidateID FlexID `json:"candidate_id"`
	Candidate   string `json:"candidate"`
}

// ElectionStatus describes the currently configured election, if any.
type ElectionStatus struct {
	HasElection bool   `json:"has_election"`
	IsActive    bool   `json:"is_active"`
	Name        string `json:"name,omitempty"`
	StartAt     string `json:"start_at,omitempty"`
	EndAt       string `json:"end_at,omitempty"`
}

// AdminStats is the turnout summary shown on the admin panel.
type AdminStats struct {
	TotalVoters    int     `json:"total_voters"`
	VotedCount     int     `json:"voted_count"`
	TurnoutPercent float64 `json:"turnout_percent"`
}

// WSMessage is the envelope pushed to browser panels over the websocket.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
