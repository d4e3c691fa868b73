package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
	"github.com/aliskhannn/brainbuzz/internal/infra/postgres"
)

// SessionRepository keeps login sessions in PostgreSQL so they survive
// restarts. It implements the same contract as the in-memory store.
type SessionRepository struct {
	db  postgres.DBTX
	ttl time.Duration
	now func() time.Time
}

// NewSessionRepository creates a SessionRepository. A ttl of zero stores
// sessions without expiry.
func NewSessionRepository(db postgres.DBTX, ttl time.Duration) *SessionRepository {
	return &SessionRepository{db: db, ttl: ttl, now: time.Now}
}

// Create inserts a session or replaces the username of an existing one.
func (r *SessionRepository) Create(ctx context.Context, id, username string) error {
	now := r.now().UTC()

	var expiresAt *time.Time
	if r.ttl > 0 {
		exp := now.Add(r.ttl)
		expiresAt = &exp
	}

	query := `
		INSERT INTO sessions (id, username, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at
	`

	if _, err := r.db.Exec(ctx, query, id, username, now, expiresAt); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// Remove deletes a session. Removing an unknown session is not an error.
func (r *SessionRepository) Remove(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether an unexpired session with the given ID exists.
func (r *SessionRepository) IsLoggedIn(ctx context.Context, id string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM sessions
			WHERE id = $1 AND (expires_at IS NULL OR expires_at > $2)
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id, r.now().UTC()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}

	return exists, nil
}

// GetUsername returns the username bound to an unexpired session.
func (r *SessionRepository) GetUsername(ctx context.Context, id string) (string, error) {
	query := `
		SELECT username FROM sessions
		WHERE id = $1 AND (expires_at IS NULL OR expires_at > $2)
	`

	var username string
	err := r.db.QueryRow(ctx, query, id, r.now().UTC()).Scan(&username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", entities.ErrSessionNotFound
		}
		return "", fmt.Errorf("get session: %w", err)
	}

	return username, nil
}

// PurgeExpired deletes expired sessions and returns how many were removed.
func (r *SessionRepository) PurgeExpired(ctx context.Context) (int, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return int(result.RowsAffected()), nil
}
