// Package repository provides the kiosk's durable local storage: the
// persisted session tokens and a small settings table, backed by SQLite.
package repository

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Token persistence keys, one per identity kind. The two rows are
// independent; either may be present without the other.
const (
	VoterTokenKey = "sessionToken"
	AdminTokenKey = "adminToken"
)

// TokenStore persists session tokens across kiosk restarts.
type TokenStore interface {
	Token(ctx context.Context, key string) (string, error)
	SetToken(ctx context.Context, key, value string) error
	DeleteToken(ctx context.Context, key string) error
}

// SettingsStore persists kiosk-local settings.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Repository provides data access methods over the kiosk database.
type Repository struct {
	db *sql.DB
}

// New opens (or creates) the kiosk database at dbPath and runs
// migrations.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewWithDB wraps an existing database handle without running
// migrations (for tests backed by sqlmock).
func NewWithDB(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks whether the database connection is alive.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations.
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS tokens (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, m := range migrations {
		if _, err := r.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Token retrieves a persisted session token. Returns ErrNotFound when
// no token is stored under key.
func (r *Repository) Token(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM tokens WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetToken stores a session token under key, replacing any prior value.
func (r *Repository) SetToken(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO tokens (key, value) VALUES (?, ?)`, key, value)
	return err
}

// DeleteToken removes the token stored under key. Deleting an absent
// token is not an error.
func (r *Repository) DeleteToken(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE key = ?`, key)
	return err
}

// GetSetting retrieves a setting value.
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting updates a setting value.
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Ensure Repository implements the store interfaces
var (
	_ TokenStore    = (*Repository)(nil)
	_ SettingsStore = (*Repository)(nil)
)
