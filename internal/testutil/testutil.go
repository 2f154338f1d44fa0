package testutil

import (
	"testing"

	"github.com/ejoven/halalan/internal/repository"
)

// NewTestRepository creates a fresh in-memory repository with all
// migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}
