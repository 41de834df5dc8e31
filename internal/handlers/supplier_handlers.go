package handlers

import (
	"net/http"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/services"

	"github.com/labstack/echo/v4"
)

// SupplierHandlers handles supplier-related HTTP requests
type SupplierHandlers struct {
	supplierService services.SupplierService
}

func NewSupplierHandlers(supplierService services.SupplierService) *SupplierHandlers {
	return &SupplierHandlers{supplierService: supplierService}
}

// ListSuppliersRequest represents query parameters for listing suppliers
type ListSuppliersRequest struct {
	Search string `query:"search"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// ListSuppliers handles GET /v1/suppliers
func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	var req ListSuppliersRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	filter := &models.SupplierFilter{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	suppliers, err := h.supplierService.ListSuppliers(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})
}

// GetSupplier handles GET /v1/suppliers/:id
func (h *SupplierHandlers) GetSupplier(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	supplier, err := h.supplierService.GetSupplier(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// CreateSupplier handles POST /v1/suppliers
func (h *SupplierHandlers) CreateSupplier(c echo.Context) error {
	var req services.SupplierInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request().Context(), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Supplier created successfully",
		"supplier": supplier,
	})
}

// UpdateSupplier handles PUT /v1/suppliers/:id
func (h *SupplierHandlers) UpdateSupplier(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req services.SupplierInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request().Context(), id, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles DELETE /v1/suppliers/:id
func (h *SupplierHandlers) DeleteSupplier(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.supplierService.DeleteSupplier(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
