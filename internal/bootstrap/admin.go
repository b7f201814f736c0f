package bootstrap

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/repository"
)

// EnsureAdmin seeds the default administrator account if it does not
// exist yet. Idempotent across restarts.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, cfg config.Config, logger *zap.Logger) error {
	exists, err := users.ExistsByEmail(ctx, cfg.Admin.Email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Admin.Password, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Name:         cfg.Admin.Name,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		// Another instance may have seeded it first.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil
		}
		return err
	}

	logger.Info("seeded admin account", zap.String("email", admin.Email))
	return nil
}
