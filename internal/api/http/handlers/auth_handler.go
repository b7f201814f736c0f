package handlers

import (
	"net/http"
	"net/mail"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/identity-service/internal/api/dto"
	"github.com/spec-kit/identity-service/internal/service"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// AuthHandler exposes the signup and signin endpoints.
type AuthHandler struct {
	users *service.UserService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{users: userService}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("email, password and name are required", nil)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperrors.NewValidationError("invalid email format", map[string]any{"field": "email"})
	}

	user, err := h.users.Register(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": dto.NewUserResponse(user)},
	})
}

// Signin handles POST /signin.
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required", nil)
	}

	pair, err := h.users.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.SigninResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	})
}
