package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/park-api/internal/domain"
)

// CustomerRepository defines persistence access for customer profiles.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.Customer, error)
	ListPage(ctx context.Context, page, size int) (domain.CustomerPage, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, name, cpf, user_id, created_at, updated_at`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (name, cpf, user_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		customer.Name,
		customer.CPF,
		customer.UserID,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	return mapError(err)
}

func (r *customerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}

func (r *customerRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id=$1`
	return scanCustomer(r.pool.QueryRow(ctx, query, userID))
}

func (r *customerRepository) ListPage(ctx context.Context, page, size int) (domain.CustomerPage, error) {
	result := domain.CustomerPage{Page: page, Size: size, Content: make([]domain.Customer, 0, size)}

	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&result.TotalElements); err != nil {
		return result, mapError(err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, size, page*size)
	if err != nil {
		return result, mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return result, err
		}
		result.Content = append(result.Content, *customer)
	}
	return result, mapError(rows.Err())
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var customer domain.Customer
	if err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.CPF,
		&customer.UserID,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &customer, nil
}
