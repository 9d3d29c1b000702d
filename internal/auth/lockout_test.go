package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/park-api/internal/config"
)

func TestNewLockout_Disabled(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewLockout(nil, config.LockoutConfig{Enabled: true, MaxAttempts: 3, Window: time.Minute}, nil))
	assert.Nil(t, NewLockout(newFakeAttemptStore(), config.LockoutConfig{Enabled: false, MaxAttempts: 3, Window: time.Minute}, nil))

	var l *Lockout
	assert.NoError(t, l.Check(context.Background(), "ana@x.com"))
	assert.NotPanics(t, func() {
		l.Fail(context.Background(), "ana@x.com")
		l.Succeed(context.Background(), "ana@x.com")
	})
}

func TestLockout_LocksAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newFakeAttemptStore()
	l := NewLockout(store, config.LockoutConfig{Enabled: true, MaxAttempts: 3, Window: time.Minute}, zap.NewNop())
	require.NotNil(t, l)

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Check(ctx, "Ana@x.com"))
		l.Fail(ctx, "Ana@x.com")
	}

	err := l.Check(ctx, "ana@x.com")
	require.ErrorIs(t, err, ErrLockedOut)
	var locked *LockedOutError
	require.True(t, errors.As(err, &locked))
	assert.Equal(t, time.Minute, locked.RetryAfter)

	assert.NoError(t, l.Check(ctx, "bob@x.com"), "other usernames are unaffected")

	l.Succeed(ctx, "ana@x.com")
	assert.NoError(t, l.Check(ctx, "ana@x.com"))
}

func TestLockout_FailsOpenOnStoreError(t *testing.T) {
	t.Parallel()

	store := newFakeAttemptStore()
	store.err = errors.New("redis: connection refused")
	l := NewLockout(store, config.LockoutConfig{Enabled: true, MaxAttempts: 1, Window: time.Minute}, zap.NewNop())

	l.Fail(context.Background(), "ana@x.com")
	assert.NoError(t, l.Check(context.Background(), "ana@x.com"))
}
