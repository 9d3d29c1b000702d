package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/park-api/internal/api/dto"
	"github.com/spec-kit/park-api/internal/domain"
	"github.com/spec-kit/park-api/internal/service"
)

// CustomersHandler exposes customer profile endpoints.
type CustomersHandler struct {
	customers *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customerService}
}

// Create handles POST /api/v1/customers for the calling account.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CustomerCreateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	owner := domain.User{ID: identity.AccountID, Username: identity.Username, Role: identity.Role}
	customer, err := h.customers.Create(c.UserContext(), owner, req.Name, req.CPF)
	if err != nil {
		return mapError(err, "customer")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCustomerResponse(customer))
}

// Details handles GET /api/v1/customers/details.
func (h *CustomersHandler) Details(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	customer, err := h.customers.GetByUserID(c.UserContext(), identity.AccountID)
	if err != nil {
		return mapError(err, "customer")
	}
	return c.JSON(dto.NewCustomerResponse(customer))
}

// Get handles GET /api/v1/customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	customer, err := h.customers.Get(c.UserContext(), id)
	if err != nil {
		return mapError(err, "customer")
	}
	return c.JSON(dto.NewCustomerResponse(customer))
}

// List handles GET /api/v1/customers?page=&size=.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	page, err := h.customers.List(c.UserContext(), c.QueryInt("page", 0), c.QueryInt("size", service.DefaultPageSize))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCustomerPageResponse(page))
}
