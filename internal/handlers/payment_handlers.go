package handlers

import (
	"net/http"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/services"

	"github.com/labstack/echo/v4"
)

// PaymentHandlers handles payment-related HTTP requests
type PaymentHandlers struct {
	paymentService services.PaymentService
}

func NewPaymentHandlers(paymentService services.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{paymentService: paymentService}
}

// ListPaymentsRequest represents query parameters for listing payments
type ListPaymentsRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// ListPayments handles GET /v1/payments
func (h *PaymentHandlers) ListPayments(c echo.Context) error {
	var req ListPaymentsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	filter := &models.PaymentFilter{
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Status != "" {
		filter.Status = &req.Status
	}
	payments, err := h.paymentService.ListPayments(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": payments,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// GetPayment handles GET /v1/payments/:id
func (h *PaymentHandlers) GetPayment(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	payment, err := h.paymentService.GetPayment(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

// CreatePayment handles POST /v1/payments
func (h *PaymentHandlers) CreatePayment(c echo.Context) error {
	var req services.PaymentInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	payment, err := h.paymentService.CreatePayment(c.Request().Context(), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Payment created successfully",
		"payment": payment,
	})
}

// UpdatePayment handles PUT /v1/payments/:id
func (h *PaymentHandlers) UpdatePayment(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req services.PaymentInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	payment, err := h.paymentService.UpdatePayment(c.Request().Context(), id, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}
