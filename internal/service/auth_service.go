package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/park-api/internal/auth"
	"github.com/spec-kit/park-api/internal/events"
	"github.com/spec-kit/park-api/internal/observability"
)

// Login outcomes recorded in metrics.
const (
	loginSuccess   = "success"
	loginFailure   = "failure"
	loginLockedOut = "locked_out"
	loginError     = "error"
)

// AuthService coordinates the login flow.
type AuthService struct {
	verifier   *auth.CredentialVerifier
	users      auth.UserStore
	tokens     *auth.TokenManager
	lockout    *auth.Lockout
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// AuthDependencies encapsulates collaborators of the auth service.
// Lockout, Dispatcher and Metrics are optional.
type AuthDependencies struct {
	Verifier   *auth.CredentialVerifier
	Users      auth.UserStore
	Tokens     *auth.TokenManager
	Lockout    *auth.Lockout
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		verifier:   deps.Verifier,
		users:      deps.Users,
		tokens:     deps.Tokens,
		lockout:    deps.Lockout,
		dispatcher: deps.Dispatcher,
		logger:     observability.OrNop(deps.Logger),
		metrics:    deps.Metrics,
	}
}

// Login exchanges a username and password for a signed token. Unknown
// usernames and wrong passwords both yield auth.ErrBadCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (auth.Token, error) {
	if err := s.lockout.Check(ctx, username); err != nil {
		s.metrics.RecordLogin(loginLockedOut)
		s.logger.Warn("login rejected, username locked out", zap.String("username", username))
		publish(ctx, s.dispatcher, s.logger, events.New(events.EventAuthenticationFailed,
			events.Actor{Username: username}, events.AuthenticationFailedPayload{Reason: loginLockedOut}))
		return auth.Token{}, err
	}

	user, err := s.verifier.Verify(ctx, username, password)
	if errors.Is(err, auth.ErrBadCredentials) {
		s.lockout.Fail(ctx, username)
		s.metrics.RecordLogin(loginFailure)
		s.logger.Warn("bad credentials", zap.String("username", username))
		publish(ctx, s.dispatcher, s.logger, events.New(events.EventAuthenticationFailed,
			events.Actor{Username: username}, events.AuthenticationFailedPayload{Reason: "bad_credentials"}))
		return auth.Token{}, auth.ErrBadCredentials
	}
	if err != nil {
		s.metrics.RecordLogin(loginError)
		return auth.Token{}, fmt.Errorf("verify credentials: %w", err)
	}

	role, err := s.users.FindRoleByUsername(ctx, user.Username)
	if err != nil {
		s.metrics.RecordLogin(loginError)
		return auth.Token{}, fmt.Errorf("load role: %w", err)
	}

	token, err := s.tokens.Mint(user.Username, role.Name())
	if err != nil {
		s.metrics.RecordLogin(loginError)
		return auth.Token{}, fmt.Errorf("mint token: %w", err)
	}

	s.lockout.Succeed(ctx, username)
	s.metrics.RecordLogin(loginSuccess)
	s.logger.Info("user authenticated", zap.String("username", user.Username), zap.String("role", role.Name()))
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserAuthenticated,
		events.Actor{AccountID: user.ID, Username: user.Username}, nil))
	return token, nil
}
