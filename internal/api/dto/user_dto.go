package dto

import "github.com/spec-kit/park-api/internal/domain"

// LoginRequest payload for POST /api/v1/auth.
type LoginRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserCreateRequest payload for account registration.
type UserCreateRequest struct {
	Username string `json:"username" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

// PasswordChangeRequest payload for PATCH /api/v1/users/:id.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=6,maxbytes=72"`
	NewPassword     string `json:"new_password" validate:"required,min=6,maxbytes=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,min=6,maxbytes=72"`
}

// UserResponse exposes an account without its password hash.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// NewUserResponse maps an account, using the bare role name.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username, Role: user.Role.Name()}
}

// NewUserResponses maps a list of accounts.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
