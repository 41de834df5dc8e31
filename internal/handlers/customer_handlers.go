package handlers

import (
	"net/http"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/services"

	"github.com/labstack/echo/v4"
)

// CustomerHandlers handles customer-related HTTP requests
type CustomerHandlers struct {
	customerService services.CustomerService
}

func NewCustomerHandlers(customerService services.CustomerService) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

// ListCustomersRequest represents query parameters for listing customers
type ListCustomersRequest struct {
	Search string `query:"search"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// ListCustomers handles GET /v1/customers
func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	var req ListCustomersRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	filter := &models.CustomerFilter{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	customers, err := h.customerService.ListCustomers(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"customers": customers,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})
}

// GetCustomer handles GET /v1/customers/:id
func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	customer, err := h.customerService.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles POST /v1/customers
func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	var req services.CustomerInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customer, err := h.customerService.CreateCustomer(c.Request().Context(), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Customer created successfully",
		"customer": customer,
	})
}

// UpdateCustomer handles PUT /v1/customers/:id
func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req services.CustomerInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customer, err := h.customerService.UpdateCustomer(c.Request().Context(), id, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /v1/customers/:id
func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.customerService.DeleteCustomer(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
