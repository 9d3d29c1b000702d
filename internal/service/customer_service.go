package service

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/spec-kit/park-api/internal/domain"
	"github.com/spec-kit/park-api/internal/events"
	"github.com/spec-kit/park-api/internal/observability"
	"github.com/spec-kit/park-api/internal/repository"
)

// Paging bounds for customer listings.
const (
	DefaultPageSize = 5
	MaxPageSize     = 100
)

// CustomerService manages customer profiles.
type CustomerService struct {
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customers:  customers,
		dispatcher: dispatcher,
		logger:     observability.OrNop(logger),
	}
}

// Create links a new customer profile to the account owner. A reused CPF or a
// second profile for the same account yields domain.ErrConflict.
func (s *CustomerService) Create(ctx context.Context, owner domain.User, name, cpf string) (*domain.Customer, error) {
	customer := &domain.Customer{
		Name:   strings.TrimSpace(name),
		CPF:    NormalizeCPF(cpf),
		UserID: owner.ID,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventCustomerCreated,
		events.Actor{AccountID: owner.ID, Username: owner.Username},
		events.CustomerCreatedPayload{CustomerID: customer.ID}))
	return customer, nil
}

// Get returns a customer by id.
func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

// GetByUserID returns the customer profile owned by an account.
func (s *CustomerService) GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error) {
	return s.customers.FindByUserID(ctx, userID)
}

// List returns one page of customers ordered by name. Out-of-range paging
// values fall back to the defaults.
func (s *CustomerService) List(ctx context.Context, page, size int) (domain.CustomerPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return s.customers.ListPage(ctx, page, size)
}

// NormalizeCPF drops the punctuation of a formatted CPF.
func NormalizeCPF(cpf string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, cpf)
}
