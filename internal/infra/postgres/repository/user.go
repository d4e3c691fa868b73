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

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

const userColumns = `id, username, email, password_hash, role, failed_login_count, lockout_end, created_at`

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository with the provided database pool.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills its ID and CreatedAt.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pgErr, ok := pgError(err, codeUniqueViolation); ok {
			switch pgErr.ConstraintName {
			case "users_username_key":
				return ErrDuplicateUsername
			case "users_email_key":
				return ErrDuplicateEmail
			}
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByUsername retrieves a user by username, ignoring case.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1)`

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email, ignoring case.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

// RecordFailedLogin counts a failed password check in one statement, so
// concurrent failures cannot overwrite each other. When the count reaches
// maxAttempts the account is locked for lockout and the counter starts over.
// Failures while a lock is active change nothing. It reports whether the
// account is locked after the update.
func (r *UserRepository) RecordFailedLogin(
	ctx context.Context, userID int64, now time.Time, maxAttempts int, lockout time.Duration,
) (bool, error) {
	query := `
		UPDATE users
		SET failed_login_count = CASE
		        WHEN lockout_end > $4 THEN failed_login_count
		        WHEN failed_login_count + 1 >= $2 THEN 0
		        ELSE failed_login_count + 1
		    END,
		    lockout_end = CASE
		        WHEN lockout_end > $4 THEN lockout_end
		        WHEN failed_login_count + 1 >= $2 THEN $3
		        ELSE lockout_end
		    END
		WHERE id = $1
		RETURNING COALESCE(lockout_end > $4, FALSE)
	`

	var locked bool
	err := r.db.QueryRow(ctx, query, userID, maxAttempts, now.Add(lockout), now).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("record failed login: %w", err)
	}

	return locked, nil
}

// ResetLoginState clears the failed login counter and any lockout.
func (r *UserRepository) ResetLoginState(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET failed_login_count = 0,
		    lockout_end = NULL
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("reset login state: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateRole changes the role of the user with the given username.
func (r *UserRepository) UpdateRole(ctx context.Context, username string, role entities.Role) error {
	query := `UPDATE users SET role = $1 WHERE lower(username) = lower($2)`

	result, err := r.db.Exec(ctx, query, string(role), username)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func scanUser(row rowScanner) (*entities.User, error) {
	var (
		user entities.User
		role string
	)
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.FailedLoginCount,
		&user.LockoutEnd,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Role = entities.Role(role)

	return &user, nil
}
