package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/park-api/internal/domain"
)

// ErrBadCredentials is returned for an unknown username and for a wrong
// password alike.
var ErrBadCredentials = errors.New("bad credentials")

// UserStore is the read-only view of accounts the auth layer consumes.
// Lookups return domain.ErrNotFound when the account does not exist.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindRoleByUsername(ctx context.Context, username string) (domain.Role, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// CredentialVerifier checks a username/password pair against the store.
type CredentialVerifier struct {
	users     UserStore
	hasher    PasswordHasher
	dummyHash string
}

// NewCredentialVerifier builds a verifier. A throwaway hash is prepared so
// unknown usernames cost the same comparison as known ones.
func NewCredentialVerifier(users UserStore, hasher PasswordHasher) (*CredentialVerifier, error) {
	dummy, err := hasher.Hash("park-api-unknown-account")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &CredentialVerifier{users: users, hasher: hasher, dummyHash: dummy}, nil
}

// Verify returns the account when password matches its stored hash.
func (v *CredentialVerifier) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := v.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		_ = v.hasher.Compare(v.dummyHash, password)
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := v.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}
