package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/park-api/internal/auth"
	"github.com/spec-kit/park-api/internal/domain"
	"github.com/spec-kit/park-api/internal/events"
	"github.com/spec-kit/park-api/internal/observability"
	"github.com/spec-kit/park-api/internal/repository"
)

// ErrPasswordMismatch rejects a password change without touching the account.
var ErrPasswordMismatch = errors.New("password mismatch")

var (
	errConfirmationMismatch = fmt.Errorf("%w: new password does not match confirmation", ErrPasswordMismatch)
	errCurrentPassword      = fmt.Errorf("%w: current password is incorrect", ErrPasswordMismatch)
)

// UserService manages accounts.
type UserService struct {
	users      repository.UserRepository
	hasher     auth.PasswordHasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{
		users:      users,
		hasher:     hasher,
		dispatcher: dispatcher,
		logger:     observability.OrNop(logger),
	}
}

// Register creates a CUSTOMER account. A taken username yields domain.ErrConflict.
func (s *UserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserRegistered,
		events.Actor{AccountID: user.ID, Username: user.Username},
		events.UserRegisteredPayload{Role: user.Role.Name()}))
	return user, nil
}

// Get returns an account by id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// List returns every account ordered by id.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// ChangePassword replaces the password of account id once current is
// verified and next equals confirm. The stored value is always a hash.
func (s *UserService) ChangePassword(ctx context.Context, id int64, current, next, confirm string) error {
	if next != confirm {
		return errConfirmationMismatch
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, current); err != nil {
		return errCurrentPassword
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventPasswordChanged,
		events.Actor{AccountID: user.ID, Username: user.Username}, nil))
	return nil
}
