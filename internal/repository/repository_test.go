package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepository_Token_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Token(context.Background(), VoterTokenKey)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_Token_Roundtrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetToken(ctx, VoterTokenKey, "tok-1"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	got, err := repo.Token(ctx, VoterTokenKey)
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if got != "tok-1" {
		t.Errorf("expected 'tok-1', got %q", got)
	}

	// A second set replaces the value.
	if err := repo.SetToken(ctx, VoterTokenKey, "tok-2"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	got, _ = repo.Token(ctx, VoterTokenKey)
	if got != "tok-2" {
		t.Errorf("expected replacement 'tok-2', got %q", got)
	}
}

func TestRepository_Token_KeysIndependent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetToken(ctx, VoterTokenKey, "voter-tok"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if err := repo.SetToken(ctx, AdminTokenKey, "admin-tok"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	if err := repo.DeleteToken(ctx, VoterTokenKey); err != nil {
		t.Fatalf("DeleteToken failed: %v", err)
	}

	if _, err := repo.Token(ctx, VoterTokenKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected voter token deleted, got err=%v", err)
	}
	got, err := repo.Token(ctx, AdminTokenKey)
	if err != nil || got != "admin-tok" {
		t.Errorf("admin token must survive voter deletion, got %q err=%v", got, err)
	}
}

func TestRepository_DeleteToken_Absent(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.DeleteToken(context.Background(), VoterTokenKey); err != nil {
		t.Fatalf("deleting an absent token must not error: %v", err)
	}
}

func TestRepository_Settings_Roundtrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetSetting(ctx, "base_url"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.SetSetting(ctx, "base_url", "http://192.168.1.20:8080"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	got, err := repo.GetSetting(ctx, "base_url")
	if err != nil || got != "http://192.168.1.20:8080" {
		t.Errorf("unexpected setting %q err=%v", got, err)
	}
}

func TestRepository_Token_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM tokens").
		WithArgs(VoterTokenKey).
		WillReturnError(errors.New("database is locked"))

	repo := NewWithDB(db)
	if _, err := repo.Token(context.Background(), VoterTokenKey); err == nil {
		t.Fatal("expected query error to propagate")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepository_SetToken_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT OR REPLACE INTO tokens").
		WithArgs(VoterTokenKey, "tok").
		WillReturnError(errors.New("disk full"))

	repo := NewWithDB(db)
	if err := repo.SetToken(context.Background(), VoterTokenKey, "tok"); err == nil {
		t.Fatal("expected exec error to propagate")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
