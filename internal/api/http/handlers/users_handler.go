package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/park-api/internal/api/dto"
	"github.com/spec-kit/park-api/internal/service"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /api/v1/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return mapError(err, "username")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Get handles GET /api/v1/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return mapError(err, "user")
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdatePassword handles PATCH /api/v1/users/:id.
func (h *UsersHandler) UpdatePassword(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.PasswordChangeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.users.ChangePassword(c.UserContext(), id, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return mapError(err, "user")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List handles GET /api/v1/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}
