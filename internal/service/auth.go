package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
	"github.com/aliskhannn/brainbuzz/internal/infra/postgres/repository"
)

var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrAccountLocked       = errors.New("account is temporarily locked")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrDuplicateEmail      = errors.New("email address is already registered")
)

// SecurityPolicy configures password hashing and account lockout.
type SecurityPolicy struct {
	BcryptCost        int
	MaxFailedAttempts int           // 0 disables lockout
	LockoutDuration   time.Duration // how long a tripped lock lasts
}

// AuthResult describes the authenticated identity of a client.
type AuthResult struct {
	Authenticated bool          `json:"authenticated"`
	SessionID     string        `json:"sessionId,omitempty"`
	Username      string        `json:"username,omitempty"`
	UserID        string        `json:"userId,omitempty"`
	Role          entities.Role `json:"role,omitempty"`
}

// AuthService implements login, registration, session checks and logout.
type AuthService struct {
	users        UserRepository
	sessions     SessionStore
	policy       SecurityPolicy
	logger       *zap.Logger
	now          func() time.Time
	newSessionID func() string
	compareHash  func(hash, password []byte) error
	// dummyHash is compared against when the login matches no account so
	// that unknown and known logins cost the same bcrypt work.
	dummyHash []byte
}

func NewAuthService(
	users UserRepository,
	sessions SessionStore,
	policy SecurityPolicy,
	logger *zap.Logger,
) *AuthService {
	if policy.BcryptCost == 0 {
		policy.BcryptCost = bcrypt.DefaultCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), policy.BcryptCost)
	if err != nil {
		logger.Error("failed to prepare dummy password hash", zap.Error(err))
	}

	return &AuthService{
		users:        users,
		sessions:     sessions,
		policy:       policy,
		logger:       logger,
		now:          time.Now,
		newSessionID: uuid.NewString,
		compareHash:  bcrypt.CompareHashAndPassword,
		dummyHash:    dummyHash,
	}
}

// Authenticate verifies credentials, where login is a username or an email.
// On success a session is created and mirrored into client storage.
func (s *AuthService) Authenticate(
	ctx context.Context, client ClientStorage, login, password string,
) (*AuthResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || strings.TrimSpace(password) == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.findUser(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = s.compareHash(s.dummyHash, []byte(password))
			s.logger.Warn("authentication failed: user not found", zap.String("login", login))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("authentication failed: lookup user", zap.String("login", login), zap.Error(err))
		return nil, err
	}

	now := s.now()
	if user.IsLockedOut(now) {
		s.logger.Warn("authentication failed: account locked", zap.String("username", user.Username))
		return nil, ErrAccountLocked
	}

	err = s.compareHash([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("authentication failed: verify password", zap.String("username", user.Username), zap.Error(err))
			return nil, fmt.Errorf("verify password: %w", err)
		}
		return nil, s.recordFailure(ctx, user, now)
	}

	if user.FailedLoginCount > 0 || user.LockoutEnd != nil {
		user.ResetFailedLogins()
		if err := s.users.ResetLoginState(ctx, user.ID); err != nil {
			s.logger.Error("failed to reset login state", zap.String("username", user.Username), zap.Error(err))
		}
	}

	sessionID := s.newSessionID()
	if err := s.sessions.Create(ctx, sessionID, user.Username); err != nil {
		s.logger.Error("failed to create session", zap.String("username", user.Username), zap.Error(err))
		return nil, fmt.Errorf("create session: %w", err)
	}

	userID := strconv.FormatInt(user.ID, 10)
	client.Set(KeySessionID, sessionID)
	client.Set(KeyUsername, user.Username)
	client.Set(KeyUserID, userID)

	s.logger.Info("authentication successful", zap.String("username", user.Username))

	return &AuthResult{
		Authenticated: true,
		SessionID:     sessionID,
		Username:      user.Username,
		UserID:        userID,
		Role:          user.Role,
	}, nil
}

func (s *AuthService) findUser(ctx context.Context, login string) (*entities.User, error) {
	user, err := s.users.GetByUsername(ctx, login)
	if err == nil || !errors.Is(err, repository.ErrUserNotFound) {
		return user, err
	}
	return s.users.GetByEmail(ctx, login)
}

func (s *AuthService) recordFailure(ctx context.Context, user *entities.User, now time.Time) error {
	if s.policy.MaxFailedAttempts <= 0 {
		s.logger.Warn("authentication failed: invalid password", zap.String("username", user.Username))
		return ErrInvalidCredentials
	}

	locked, err := s.users.RecordFailedLogin(
		ctx, user.ID, now, s.policy.MaxFailedAttempts, s.policy.LockoutDuration,
	)
	if err != nil {
		s.logger.Error("failed to record failed login", zap.String("username", user.Username), zap.Error(err))
		return ErrInvalidCredentials
	}

	if locked {
		s.logger.Warn("account locked after failed attempts", zap.String("username", user.Username))
		return ErrAccountLocked
	}

	s.logger.Warn("authentication failed: invalid password", zap.String("username", user.Username))
	return ErrInvalidCredentials
}

// Register creates a customer account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*entities.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := ValidateRegistration(req); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		s.logger.Warn("registration failed: username exists", zap.String("username", req.Username))
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		s.logger.Warn("registration failed: email exists", zap.String("email", req.Email))
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.policy.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := entities.NewUser(req.Username, req.Email, string(hash))
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrDuplicateUsername
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("registration failed", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered", zap.String("username", user.Username))
	return user, nil
}

// CheckAuthentication reports whether the identity held by the client still
// maps to a live session. Lookup failures count as unauthenticated.
func (s *AuthService) CheckAuthentication(ctx context.Context, client ClientStorage) AuthResult {
	sessionID := client.Get(KeySessionID)
	username := client.Get(KeyUsername)
	userID := client.Get(KeyUserID)

	if sessionID == "" || username == "" || userID == "" {
		return AuthResult{}
	}

	sessionUser, err := s.sessions.GetUsername(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, entities.ErrSessionNotFound) {
			s.logger.Error("failed to validate session", zap.Error(err))
		}
		return AuthResult{}
	}

	if !strings.EqualFold(sessionUser, username) {
		s.logger.Warn("session does not belong to client user",
			zap.String("session_user", sessionUser),
			zap.String("client_user", username),
		)
		return AuthResult{}
	}

	user, err := s.users.GetByUsername(ctx, sessionUser)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Error("failed to load session user", zap.String("username", sessionUser), zap.Error(err))
		}
		return AuthResult{}
	}

	if strconv.FormatInt(user.ID, 10) != userID {
		return AuthResult{}
	}

	return AuthResult{
		Authenticated: true,
		SessionID:     sessionID,
		Username:      user.Username,
		UserID:        userID,
		Role:          user.Role,
	}
}

// Logout ends the client's session and clears its stored identity.
func (s *AuthService) Logout(ctx context.Context, client ClientStorage) error {
	sessionID := client.Get(KeySessionID)
	username := client.Get(KeyUsername)

	var removeErr error
	if sessionID != "" {
		if err := s.sessions.Remove(ctx, sessionID); err != nil {
			removeErr = fmt.Errorf("remove session: %w", err)
		}
	}

	for _, key := range ClientKeys {
		client.Remove(key)
	}

	if removeErr != nil {
		s.logger.Error("logout failed", zap.String("username", username), zap.Error(removeErr))
		return removeErr
	}

	s.logger.Info("user logged out", zap.String("username", username))
	return nil
}
