package auth

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/park-api/internal/domain"
)

type fakeUserStore struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	err     error
	lookups int
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*domain.User)}
	for _, u := range users {
		s.users[u.Username] = u
	}
	return s
}

func (s *fakeUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) FindRoleByUsername(ctx context.Context, username string) (domain.Role, error) {
	u, err := s.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeUserStore) setRole(username string, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username].Role = role
}

type fakeAttemptStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{counts: make(map[string]int64)}
}

func (s *fakeAttemptStore) Failures(_ context.Context, key string) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, 0, s.err
	}
	return s.counts[key], time.Minute, nil
}

func (s *fakeAttemptStore) RecordFailure(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.counts[key]++
	return s.counts[key], nil
}

func (s *fakeAttemptStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, key)
	return s.err
}
