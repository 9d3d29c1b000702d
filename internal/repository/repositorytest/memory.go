// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/park-api/internal/auth"
	"github.com/spec-kit/park-api/internal/domain"
	"github.com/spec-kit/park-api/internal/repository"
)

var (
	_ repository.UserRepository     = (*Users)(nil)
	_ repository.CustomerRepository = (*Customers)(nil)
	_ auth.UserStore                = (*Users)(nil)
	_ auth.AttemptStore             = (*Attempts)(nil)
)

// Users is an in-memory repository.UserRepository. Set Err to make every
// call fail with it.
type Users struct {
	mu     sync.Mutex
	byID   map[int64]domain.User
	nextID int64
	Err    error
}

// NewUsers returns a store seeded with users, keeping their ids when set.
func NewUsers(users ...domain.User) *Users {
	s := &Users{byID: make(map[int64]domain.User)}
	for _, u := range users {
		s.mu.Lock()
		s.insert(&u)
		s.mu.Unlock()
	}
	return s
}

func (s *Users) insert(user *domain.User) {
	if user.ID == 0 {
		s.nextID++
		user.ID = s.nextID
	} else if user.ID > s.nextID {
		s.nextID = user.ID
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	s.byID[user.ID] = *user
}

func (s *Users) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.byID {
		if u.Username == user.Username {
			return domain.ErrConflict
		}
	}
	s.insert(user)
	return nil
}

func (s *Users) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	s.byID[id] = u
	return nil
}

func (s *Users) FindByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *Users) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, u := range s.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Users) FindRoleByUsername(ctx context.Context, username string) (domain.Role, error) {
	u, err := s.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (s *Users) List(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]domain.User, 0, len(s.byID))
	for _, u := range s.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// SetRole changes the stored role of an account.
func (s *Users) SetRole(id int64, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.byID[id]
	u.Role = role
	s.byID[id] = u
}

// Customers is an in-memory repository.CustomerRepository.
type Customers struct {
	mu     sync.Mutex
	byID   map[int64]domain.Customer
	nextID int64
	Err    error
}

// NewCustomers returns an empty store.
func NewCustomers() *Customers {
	return &Customers{byID: make(map[int64]domain.Customer)}
}

func (s *Customers) Create(_ context.Context, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, c := range s.byID {
		if c.CPF == customer.CPF || c.UserID == customer.UserID {
			return domain.ErrConflict
		}
	}
	s.nextID++
	customer.ID = s.nextID
	customer.CreatedAt = time.Now().UTC()
	customer.UpdatedAt = customer.CreatedAt
	s.byID[customer.ID] = *customer
	return nil
}

func (s *Customers) FindByID(_ context.Context, id int64) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *Customers) FindByUserID(_ context.Context, userID int64) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, c := range s.byID {
		if c.UserID == userID {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Customers) ListPage(_ context.Context, page, size int) (domain.CustomerPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := domain.CustomerPage{Page: page, Size: size, Content: []domain.Customer{}}
	if s.Err != nil {
		return result, s.Err
	}

	all := make([]domain.Customer, 0, len(s.byID))
	for _, c := range s.byID {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})

	result.TotalElements = int64(len(all))
	start := page * size
	if start >= len(all) {
		return result, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	result.Content = append(result.Content, all[start:end]...)
	return result, nil
}

// Attempts is an in-memory auth.AttemptStore without expiry.
type Attempts struct {
	mu     sync.Mutex
	counts map[string]int64
	Err    error
}

// NewAttempts returns an empty store.
func NewAttempts() *Attempts {
	return &Attempts{counts: make(map[string]int64)}
}

func (s *Attempts) Failures(_ context.Context, key string) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, 0, s.Err
	}
	return s.counts[key], time.Minute, nil
}

func (s *Attempts) RecordFailure(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	s.counts[key]++
	return s.counts[key], nil
}

func (s *Attempts) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, key)
	return s.Err
}

// Count returns the recorded failures for a lowercased username.
func (s *Attempts) Count(username string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[strings.ToLower(username)]
}
