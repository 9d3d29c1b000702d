package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/park-api/internal/domain"
	"github.com/spec-kit/park-api/internal/observability"
)

// AuthMiddleware validates bearer tokens and attaches the caller's identity.
// It never rejects a request: routes decide access through AccessDecider.
type AuthMiddleware struct {
	tokens  *TokenManager
	users   UserStore
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users UserStore, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, logger: observability.OrNop(logger), metrics: metrics}
}

// Handle runs once per request, ahead of every route.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, BearerPrefix) {
		m.metrics.RecordTokenValidation("absent")
		return c.Next()
	}

	claims, err := m.tokens.Decode(header)
	if err != nil {
		m.logger.Warn("bearer token rejected", zap.String("path", c.Path()))
		m.metrics.RecordTokenValidation("invalid")
		return c.Next()
	}

	identity, err := m.resolve(c.UserContext(), claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			m.metrics.RecordTokenValidation("unknown_subject")
		} else {
			m.metrics.RecordTokenValidation("lookup_failed")
			m.logger.Warn("identity lookup failed", zap.String("username", claims.Subject), zap.Error(err))
		}
		return c.Next()
	}

	m.metrics.RecordTokenValidation("valid")
	setIdentity(c, identity)
	return c.Next()
}

// resolve reloads the account so the identity reflects its current role.
func (m *AuthMiddleware) resolve(ctx context.Context, username string) (*Identity, error) {
	user, err := m.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewIdentity(user), nil
}
