package session

import (
	"context"

	"github.com/ejoven/halalan/internal/logger"
	"github.com/ejoven/halalan/internal/models"
	"github.com/ejoven/halalan/internal/repository"
	"github.com/ejoven/halalan/pkg/electionapi"
)

// VoterStore is the voter session state machine.
type VoterStore = Store[models.VoterCredentials, models.Voter]

// AdminStore is the admin session state machine. Structurally identical
// to the voter store but a separate instance with no shared state.
type AdminStore = Store[models.AdminCredentials, models.Admin]

// voterBackend adapts the election API's voter endpoints to Backend.
type voterBackend struct {
	api electionapi.Client
}

func (b voterBackend) Login(ctx context.Context, creds models.VoterCredentials) (string, models.Voter, error) {
	return b.api.VoterLogin(ctx, creds.VoterID, creds.PIN)
}

func (b voterBackend) Identity(ctx context.Context) (models.Voter, bool, error) {
	return b.api.VoterMe(ctx)
}

func (b voterBackend) Logout(ctx context.Context) error {
	return b.api.VoterLogout(ctx)
}

// adminBackend adapts the election API's admin endpoints to Backend.
type adminBackend struct {
	api electionapi.Client
}

func (b adminBackend) Login(ctx context.Context, creds models.AdminCredentials) (string, models.Admin, error) {
	return b.api.AdminLogin(ctx, creds.Username, creds.Password)
}

func (b adminBackend) Identity(ctx context.Context) (models.Admin, bool, error) {
	return b.api.AdminMe(ctx)
}

func (b adminBackend) Logout(ctx context.Context) error {
	return b.api.AdminLogout(ctx)
}

// NewVoterStore creates the voter session store and registers it as the
// API client's voter token source.
func NewVoterStore(log logger.Logger, api electionapi.Client, tokens repository.TokenStore) *VoterStore {
	store := New[models.VoterCredentials, models.Voter](log, voterBackend{api: api}, tokens, repository.VoterTokenKey, "voter")
	api.SetTokenSource(electionapi.AuthVoter, store.Token)
	return store
}

// NewAdminStore creates the admin session store and registers it as the
// API client's admin token source.
func NewAdminStore(log logger.Logger, api electionapi.Client, tokens repository.TokenStore) *AdminStore {
	store := New[models.AdminCredentials, models.Admin](log, adminBackend{api: api}, tokens, repository.AdminTokenKey, "admin")
	api.SetTokenSource(electionapi.AuthAdmin, store.Token)
	return store
}
