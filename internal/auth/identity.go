package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/park-api/internal/domain"
)

const identityKey = "auth_identity"

// Identity is the validated caller of a single request.
type Identity struct {
	AccountID   int64
	Username    string
	Role        domain.Role
	Authorities []string
}

// NewIdentity resolves the identity of a stored account.
func NewIdentity(user *domain.User) *Identity {
	return &Identity{
		AccountID:   user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Authorities: []string{string(user.Role)},
	}
}

// HasAnyRole reports whether the identity holds one of roles.
func (i *Identity) HasAnyRole(roles ...domain.Role) bool {
	if i == nil {
		return false
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// IdentityFromContext retrieves the identity attached by AuthMiddleware.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	identity, ok := c.Locals(identityKey).(*Identity)
	return identity, ok && identity != nil
}

func setIdentity(c *fiber.Ctx, identity *Identity) {
	c.Locals(identityKey, identity)
}
