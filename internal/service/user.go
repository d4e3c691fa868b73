package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
	"github.com/aliskhannn/brainbuzz/internal/infra/postgres/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
)

type UserService struct {
	repository UserRepository
	logger     *zap.Logger
}

func NewUserService(repository UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repository: repository, logger: logger}
}

// AssignRole changes the role of an existing user.
func (s *UserService) AssignRole(ctx context.Context, username string, role entities.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}

	if err := s.repository.UpdateRole(ctx, username, role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("assign role: %w", err)
	}

	s.logger.Info("role assigned", zap.String("username", username), zap.String("role", string(role)))
	return nil
}

// EnsureAdmin promotes username to Admin. A missing user is only logged, so
// the account can be registered later and promoted on the next start.
func (s *UserService) EnsureAdmin(ctx context.Context, username string) error {
	if username == "" {
		return nil
	}

	err := s.AssignRole(ctx, username, entities.RoleAdmin)
	if errors.Is(err, ErrUserNotFound) {
		s.logger.Warn("admin user not registered yet", zap.String("username", username))
		return nil
	}
	return err
}
