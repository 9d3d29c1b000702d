package dto

import "github.com/spec-kit/park-api/internal/domain"

// CustomerCreateRequest payload for POST /api/v1/customers.
type CustomerCreateRequest struct {
	Name string `json:"name" validate:"required,min=5,max=100"`
	CPF  string `json:"cpf" validate:"required,cpf"`
}

// CustomerResponse exposes a customer profile.
type CustomerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

// NewCustomerResponse maps a customer.
func NewCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{ID: customer.ID, Name: customer.Name, CPF: customer.CPF}
}

// CustomerPageResponse is one page of customers.
type CustomerPageResponse struct {
	Content       []CustomerResponse `json:"content"`
	Page          int                `json:"page"`
	Size          int                `json:"size"`
	TotalElements int64              `json:"total_elements"`
	TotalPages    int                `json:"total_pages"`
}

// NewCustomerPageResponse maps a page of customers.
func NewCustomerPageResponse(page domain.CustomerPage) CustomerPageResponse {
	content := make([]CustomerResponse, 0, len(page.Content))
	for i := range page.Content {
		content = append(content, NewCustomerResponse(&page.Content[i]))
	}
	return CustomerPageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
	}
}
