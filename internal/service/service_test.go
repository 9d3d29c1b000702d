package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/park-api/internal/auth"
	"github.com/spec-kit/park-api/internal/events"
)

const testSecret = "0123456789-0123456789-0123456789"

func newTestHasher(t *testing.T) auth.PasswordHasher {
	t.Helper()

	hasher, err := auth.NewPasswordHasher(auth.AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)
	return hasher
}

func mustHash(t *testing.T, hasher auth.PasswordHasher, password string) string {
	t.Helper()

	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	return hash
}

// recorder captures every published event.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func newRecordingDispatcher() (events.Dispatcher, *recorder) {
	d := events.NewInMemoryDispatcher()
	r := &recorder{}
	for _, et := range []events.EventType{
		events.EventUserAuthenticated,
		events.EventAuthenticationFailed,
		events.EventUserRegistered,
		events.EventPasswordChanged,
		events.EventCustomerCreated,
	} {
		d.Subscribe(et, func(_ context.Context, e events.Event) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, e)
			return nil
		})
	}
	return d, r
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestTokens(t *testing.T) *auth.TokenManager {
	t.Helper()

	tokens, err := auth.NewTokenManager(testSecret, 2*time.Minute)
	require.NoError(t, err)
	return tokens
}
