package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/identity-service/internal/api/http/handlers"
	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/observability"
	"github.com/spec-kit/identity-service/internal/persistence"
	"github.com/spec-kit/identity-service/internal/service"
)

func TestRequestTimeoutReachesServices(t *testing.T) {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret",
			AccessTokenTTLHours:  1,
			RefreshTokenTTLHours: 24,
			BcryptCost:           bcrypt.MinCost,
		},
	}

	logger := zap.NewNop()
	repo := newMemoryUserRepository()
	userService := service.NewUserService(cfg, service.Dependencies{UserRepo: repo}, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 30*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("identity-service", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(userService),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: auth.NewMiddleware(userService.TokenManager()),
	})

	resp, _ := doJSON(t, app, http.MethodPost, "/signup", "", map[string]string{
		"email": "alice@example.com", "password": "pw123!", "name": "Alice",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, repo.sawDeadline, "service context should carry the request deadline")
}
