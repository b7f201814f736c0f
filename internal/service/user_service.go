package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/repository"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// UserService coordinates registration, sign-in and profile access.
type UserService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	publisher  events.Publisher
	logger     *zap.Logger
	bcryptCost int
}

// Dependencies encapsulates collaborator requirements for the service.
type Dependencies struct {
	UserRepo  repository.UserRepository
	Publisher events.Publisher
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, deps Dependencies, logger *zap.Logger) *UserService {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &UserService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL(), cfg.Auth.RefreshTTL()),
		publisher:  publisher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new member account. The exists-then-insert pair is
// not atomic; a concurrent registration losing the race surfaces the
// same conflict via the repository's duplicate detection.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewEmailExists(email)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         domain.RoleMember,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewEmailExists(email)
		}
		return nil, err
	}
	return user, nil
}

// SignIn verifies credentials and issues a token pair. Unknown email
// and wrong password produce the identical failure.
func (s *UserService) SignIn(ctx context.Context, email, password string) (domain.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TokenPair{}, apperrors.NewInvalidCredentials()
		}
		return domain.TokenPair{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return domain.TokenPair{}, apperrors.NewInvalidCredentials()
	}

	access, refresh, err := s.tokenMgr.IssueTokens(user.Subject(), []string{string(user.Role)})
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "Bearer"}, nil
}

// GetUser returns the target profile. The access check runs before any
// persistence lookup; a denied caller learns nothing about the target.
func (s *UserService) GetUser(ctx context.Context, caller domain.Identity, targetID string) (*domain.User, error) {
	if !auth.CanAccess(caller, targetID) {
		return nil, apperrors.NewForbidden("access denied")
	}

	id, err := parseUserID(targetID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial profile update. Only supplied fields
// change; a supplied but blank name is rejected rather than stored.
func (s *UserService) UpdateUser(ctx context.Context, caller domain.Identity, targetID string, email, name *string) (*domain.User, error) {
	if !auth.CanAccess(caller, targetID) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, apperrors.NewValidationError("name must not be blank", map[string]any{"field": "name"})
	}

	id, err := parseUserID(targetID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	if email != nil {
		user.Email = *email
	}
	if name != nil {
		user.Name = *name
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperrors.NewEmailExists(user.Email)
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns one page of accounts. The admin-only gate is applied
// at the routing boundary, not here; listing has no single target owner.
func (s *UserService) ListUsers(ctx context.Context, page, size int) ([]domain.User, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return s.users.List(ctx, page, size)
}

// DeleteUser removes the account and hands cleanup to the deletion
// queue. Publish failures are logged, never surfaced to the caller.
func (s *UserService) DeleteUser(ctx context.Context, caller domain.Identity, targetID string) error {
	if !auth.CanAccess(caller, targetID) {
		return apperrors.NewForbidden("access denied")
	}

	id, err := parseUserID(targetID)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	if err := s.publisher.PublishUserDeleted(ctx, id); err != nil {
		s.logger.Warn("failed to publish deletion event", zap.Int64("user_id", id), zap.Error(err))
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *UserService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func parseUserID(targetID string) (int64, error) {
	id, err := strconv.ParseInt(targetID, 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.NewNotFound("user", nil)
	}
	return id, nil
}
