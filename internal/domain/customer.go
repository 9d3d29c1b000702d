package domain

import "time"

// Customer is the parking customer profile owned by a CUSTOMER account.
type Customer struct {
	ID        int64
	Name      string
	CPF       string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerPage is one page of customers ordered by name.
type CustomerPage struct {
	Content       []Customer
	Page          int
	Size          int
	TotalElements int64
}

// TotalPages derives the page count from the total and page size.
func (p CustomerPage) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}
