package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/park-api/internal/api/dto"
	"github.com/spec-kit/park-api/internal/auth"
	"github.com/spec-kit/park-api/internal/domain"
	"github.com/spec-kit/park-api/internal/service"
	apperrors "github.com/spec-kit/park-api/pkg/util"
)

// BadCredentialsMessage is the only message a failed login ever returns.
const BadCredentialsMessage = "Credenciais Inválidas"

// mapError converts service errors into responses. subject names the
// resource in not-found and conflict messages. Unknown errors pass through
// and are rendered as 500.
func mapError(err error, subject string) error {
	var locked *auth.LockedOutError
	switch {
	case errors.Is(err, auth.ErrBadCredentials):
		return apperrors.NewBadRequest(BadCredentialsMessage)
	case errors.As(err, &locked):
		seconds := int(math.Ceil(locked.RetryAfter.Seconds()))
		return apperrors.NewTooManyRequests("too many failed login attempts").
			WithHeader(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return apperrors.NewValidationError(dto.ValidationFailedMessage, map[string]string{
			"password": "password must be at most 72 bytes",
		})
	case errors.Is(err, service.ErrPasswordMismatch):
		return apperrors.NewBadRequest(err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return apperrors.NewNotFound(subject + " not found")
	case errors.Is(err, domain.ErrConflict):
		return apperrors.NewConflict(subject + " already registered")
	}
	return err
}

// bind parses and validates the request body into req.
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	return dto.Validate(req)
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequest("invalid id")
	}
	return id, nil
}

func currentIdentity(c *fiber.Ctx) (*auth.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return identity, nil
}
