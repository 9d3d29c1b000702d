package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/park-api/pkg/util"
)

// EntryPoint answers requests that reach a protected route without an identity.
type EntryPoint struct {
	challenge string
	logger    *zap.Logger
}

// NewEntryPoint builds the entry point advertising realm in its challenge.
func NewEntryPoint(realm string, logger *zap.Logger) *EntryPoint {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryPoint{challenge: fmt.Sprintf("Bearer realm='%s'", realm), logger: logger}
}

// Commence returns the 401 error for c.
func (e *EntryPoint) Commence(c *fiber.Ctx) error {
	e.logger.Info("unauthenticated access", zap.String("method", c.Method()), zap.String("path", c.Path()))
	return apperrors.NewUnauthorized("authentication required").WithHeader(fiber.HeaderWWWAuthenticate, e.challenge)
}
