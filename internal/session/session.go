// Package session owns the kiosk's two independent identities (voter
// and admin) as one generic token-backed state machine instantiated
// twice. Tokens survive restarts through a durable TokenStore; an
// invalid persisted token is discarded silently, never surfaced.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/ejoven/halalan/internal/logger"
	"github.com/ejoven/halalan/internal/repository"
)

// State is the externally observable session state.
type State int

const (
	// StateAnonymous means no valid identity is held.
	StateAnonymous State = iota
	// StateRestoring means a persisted token is being validated.
	StateRestoring
	// StateAuthenticated means token and identity are both populated.
	StateAuthenticated
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Backend performs the remote calls for one identity kind. Identity is
// the "who am I" call; it authenticates with whatever token the store
// currently exposes.
type Backend[C, I any] interface {
	Login(ctx context.Context, creds C) (token string, identity I, err error)
	Identity(ctx context.Context) (identity I, ok bool, err error)
	Logout(ctx context.Context) error
}

// Store is a session state machine for one identity kind. The token and
// identity record always change together: every transition computes the
// full new state and assigns it once.
type Store[C, I any] struct {
	log     logger.Logger
	backend Backend[C, I]
	tokens  repository.TokenStore
	key     string
	kind    string

	// opMu serializes login, logout, and restore so only one operation
	// per identity kind is in flight at a time.
	opMu sync.Mutex

	// stateMu guards the fields below. It is never held across a
	// network call, so Token() stays readable mid-operation (the API
	// client reads the token at call time).
	stateMu  sync.RWMutex
	state    State
	token    string
	identity *I
}

// New creates a session store persisting its token under key.
func New[C, I any](log logger.Logger, backend Backend[C, I], tokens repository.TokenStore, key, kind string) *Store[C, I] {
	return &Store[C, I]{
		log:     log,
		backend: backend,
		tokens:  tokens,
		key:     key,
		kind:    kind,
		state:   StateAnonymous,
	}
}

// set assigns the complete new state in one step.
func (s *Store[C, I]) set(state State, token string, identity *I) {
	s.stateMu.Lock()
	s.state = state
	s.token = token
	s.identity = identity
	s.stateMu.Unlock()
}

// Token returns the current session token, empty when anonymous.
func (s *Store[C, I]) Token() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.token
}

// State returns the current session state.
func (s *Store[C, I]) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Identity returns the identity record and whether the session is
// authenticated.
func (s *Store[C, I]) Identity() (I, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.state != StateAuthenticated || s.identity == nil {
		var zero I
		return zero, false
	}
	return *s.identity, true
}

// Restore validates a persisted token against the service. A missing
// token leaves the session anonymous; a rejected token (or any failure
// of the "who am I" call) is removed from durable storage so an invalid
// token never remains stored. Restore never surfaces an error: an
// expired token is expected, not exceptional. Idempotent when no token
// is present.
func (s *Store[C, I]) Restore(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	stored, err := s.tokens.Token(ctx, s.key)
	if err != nil || stored == "" {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("failed to read persisted token", "kind", s.kind, "error", err)
		}
		s.set(StateAnonymous, "", nil)
		return
	}

	// Expose the stored token so the backend's "who am I" call can
	// authenticate with it.
	s.set(StateRestoring, stored, nil)

	identity, ok, err := s.backend.Identity(ctx)
	if err != nil || !ok {
		if err != nil {
			s.log.Debug("session restore failed", "kind", s.kind, "error", err)
		} else {
			s.log.Debug("persisted token rejected", "kind", s.kind)
		}
		if delErr := s.tokens.DeleteToken(ctx, s.key); delErr != nil {
			s.log.Warn("failed to discard invalid token", "kind", s.kind, "error", delErr)
		}
		s.set(StateAnonymous, "", nil)
		return
	}

	s.set(StateAuthenticated, stored, &identity)
	s.log.Info("session restored", "kind", s.kind)
}

// Login authenticates with the service. On success the token is
// persisted and the identity populated as a single unit; on any failure
// nothing mutates and the error is returned for display.
func (s *Store[C, I]) Login(ctx context.Context, creds C) (I, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	token, identity, err := s.backend.Login(ctx, creds)
	if err != nil {
		var zero I
		return zero, err
	}

	if err := s.tokens.SetToken(ctx, s.key, token); err != nil {
		var zero I
		return zero, err
	}

	s.set(StateAuthenticated, token, &identity)
	s.log.Info("logged in", "kind", s.kind)
	return identity, nil
}

// Logout ends the session: the remote call is attempted but its failure
// never blocks local teardown. Token and identity are cleared
// unconditionally.
func (s *Store[C, I]) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.backend.Logout(ctx); err != nil {
		s.log.Debug("remote logout failed", "kind", s.kind, "error", err)
	}
	if err := s.tokens.DeleteToken(ctx, s.key); err != nil {
		s.log.Warn("failed to delete persisted token", "kind", s.kind, "error", err)
	}

	s.set(StateAnonymous, "", nil)
	s.log.Info("logged out", "kind", s.kind)
}

// Update applies fn to a copy of the identity record and swaps it in.
// No-op while not authenticated.
func (s *Store[C, I]) Update(fn func(*I)) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.state != StateAuthenticated || s.identity == nil {
		return
	}
	updated := *s.identity
	fn(&updated)
	s.identity = &updated
}
