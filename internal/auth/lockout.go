package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/park-api/internal/config"
	"github.com/spec-kit/park-api/internal/observability"
)

// ErrLockedOut is matched by LockedOutError.
var ErrLockedOut = errors.New("too many failed login attempts")

// LockedOutError reports a username that may not log in for RetryAfter.
type LockedOutError struct {
	RetryAfter time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("%s, retry after %s", ErrLockedOut, e.RetryAfter)
}

func (e *LockedOutError) Is(target error) bool {
	return target == ErrLockedOut
}

// AttemptStore counts failed logins inside a sliding expiry window.
type AttemptStore interface {
	// Failures returns the current count and the time left before it resets.
	Failures(ctx context.Context, key string) (int64, time.Duration, error)
	// RecordFailure increments the count, starting the window on the first failure.
	RecordFailure(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

// Lockout blocks a username after too many failed logins. A nil *Lockout is
// a disabled lockout.
type Lockout struct {
	store       AttemptStore
	maxAttempts int64
	window      time.Duration
	logger      *zap.Logger
}

// NewLockout returns nil when lockout is disabled or has no store.
func NewLockout(store AttemptStore, cfg config.LockoutConfig, logger *zap.Logger) *Lockout {
	if store == nil || !cfg.Enabled || cfg.MaxAttempts <= 0 || cfg.Window <= 0 {
		return nil
	}
	return &Lockout{
		store:       store,
		maxAttempts: int64(cfg.MaxAttempts),
		window:      cfg.Window,
		logger:      observability.OrNop(logger),
	}
}

// Check fails with a *LockedOutError while username is locked. Store errors
// are logged and do not block the login.
func (l *Lockout) Check(ctx context.Context, username string) error {
	if l == nil {
		return nil
	}
	count, ttl, err := l.store.Failures(ctx, lockoutKey(username))
	if err != nil {
		l.logger.Warn("lockout store unavailable", zap.Error(err))
		return nil
	}
	if count >= l.maxAttempts {
		if ttl <= 0 {
			ttl = l.window
		}
		return &LockedOutError{RetryAfter: ttl}
	}
	return nil
}

// Fail records a failed attempt for username.
func (l *Lockout) Fail(ctx context.Context, username string) {
	if l == nil {
		return
	}
	count, err := l.store.RecordFailure(ctx, lockoutKey(username), l.window)
	if err != nil {
		l.logger.Warn("lockout store unavailable", zap.Error(err))
		return
	}
	if count == l.maxAttempts {
		l.logger.Warn("username locked out", zap.String("username", username), zap.Duration("window", l.window))
	}
}

// Succeed clears the failure count for username.
func (l *Lockout) Succeed(ctx context.Context, username string) {
	if l == nil {
		return
	}
	if err := l.store.Reset(ctx, lockoutKey(username)); err != nil {
		l.logger.Warn("lockout store unavailable", zap.Error(err))
	}
}

func lockoutKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
