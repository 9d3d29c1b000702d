package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/park-api/internal/domain"
	"github.com/spec-kit/park-api/internal/events"
	"github.com/spec-kit/park-api/internal/repository/repositorytest"
)

func TestCustomerService_CreateNormalizesCPF(t *testing.T) {
	t.Parallel()

	dispatcher, rec := newRecordingDispatcher()
	svc := NewCustomerService(repositorytest.NewCustomers(), dispatcher, nil)
	owner := domain.User{ID: 5, Username: "ana@x.com", Role: domain.RoleCustomer}

	customer, err := svc.Create(context.Background(), owner, "  Ana Silva ", "529.982.247-25")
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", customer.Name)
	assert.Equal(t, "52998224725", customer.CPF)
	assert.Equal(t, int64(5), customer.UserID)
	assert.Equal(t, []events.EventType{events.EventCustomerCreated}, rec.types())

	found, err := svc.GetByUserID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.ID)
}

func TestCustomerService_CreateConflicts(t *testing.T) {
	t.Parallel()

	svc := NewCustomerService(repositorytest.NewCustomers(), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.User{ID: 5}, "Ana Silva", "52998224725")
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.User{ID: 6}, "Bruno Costa", "529.982.247-25")
	assert.ErrorIs(t, err, domain.ErrConflict, "same cpf")

	_, err = svc.Create(ctx, domain.User{ID: 5}, "Ana Outra", "11144477735")
	assert.ErrorIs(t, err, domain.ErrConflict, "second profile for account")
}

func TestCustomerService_ListPaging(t *testing.T) {
	t.Parallel()

	repo := repositorytest.NewCustomers()
	svc := NewCustomerService(repo, nil, nil)
	for i := 0; i < 7; i++ {
		c := &domain.Customer{Name: fmt.Sprintf("Customer %d", 6-i), CPF: fmt.Sprintf("%011d", i), UserID: int64(i + 1)}
		require.NoError(t, repo.Create(context.Background(), c))
	}

	first, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, first.Size)
	assert.Len(t, first.Content, DefaultPageSize)
	assert.Equal(t, "Customer 0", first.Content[0].Name)
	assert.Equal(t, int64(7), first.TotalElements)
	assert.Equal(t, 2, first.TotalPages())

	second, err := svc.List(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Len(t, second.Content, 2)

	clamped, err := svc.List(context.Background(), -3, 1000)
	require.NoError(t, err)
	assert.Equal(t, 0, clamped.Page)
	assert.Equal(t, MaxPageSize, clamped.Size)
}
