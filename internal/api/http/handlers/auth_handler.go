package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/park-api/internal/api/dto"
	"github.com/spec-kit/park-api/internal/service"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/v1/auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return mapError(err, "user")
	}
	return c.JSON(dto.TokenResponse{Token: token.Value})
}
