package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/park-api/internal/domain"
)

func newTestVerifier(t *testing.T, users UserStore) (*CredentialVerifier, PasswordHasher) {
	t.Helper()

	hasher, err := NewPasswordHasher(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)
	verifier, err := NewCredentialVerifier(users, hasher)
	require.NoError(t, err)
	return verifier, hasher
}

func mustHash(t *testing.T, hasher PasswordHasher, password string) string {
	t.Helper()

	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	return hash
}

func TestCredentialVerifier_Verify(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	verifier, hasher := newTestVerifier(t, store)
	store.users["ana@x.com"] = &domain.User{ID: 1, Username: "ana@x.com", PasswordHash: mustHash(t, hasher, "123456"), Role: domain.RoleCustomer}

	user, err := verifier.Verify(context.Background(), "ana@x.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "ana@x.com", password: "654321"},
		{name: "unknown username", username: "bob@x.com", password: "123456"},
		{name: "empty password", username: "ana@x.com", password: ""},
		{name: "username case differs", username: "ANA@x.com", password: "123456"},
	}

	for _, tt := range tests {
		user, err := verifier.Verify(context.Background(), tt.username, tt.password)
		assert.Nil(t, user, tt.name)
		assert.ErrorIs(t, err, ErrBadCredentials, tt.name)
	}
}

func TestCredentialVerifier_PropagatesStoreFailure(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	store.err = errors.New("connection reset")
	verifier, _ := newTestVerifier(t, store)

	_, err := verifier.Verify(context.Background(), "ana@x.com", "123456")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadCredentials)
}

func TestCredentialVerifier_RejectsPlaintextStoredPassword(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore(&domain.User{ID: 2, Username: "legacy@x.com", PasswordHash: "123456", Role: domain.RoleCustomer})
	verifier, _ := newTestVerifier(t, store)

	_, err := verifier.Verify(context.Background(), "legacy@x.com", "123456")
	assert.ErrorIs(t, err, ErrBadCredentials)
}
