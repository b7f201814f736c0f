package dto

import "github.com/spec-kit/identity-service/internal/domain"

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SigninRequest payload for sign-in.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninResponse carries the issued token pair.
type SigninResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// UserUpdateRequest is a partial update; nil fields are left untouched.
type UserUpdateRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

// UserResponse is the external view of an account.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserPageResponse is one page of accounts.
type UserPageResponse struct {
	Users []UserResponse `json:"users"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Total int64          `json:"total"`
}

// NewUserResponse maps the domain model to its external view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}
