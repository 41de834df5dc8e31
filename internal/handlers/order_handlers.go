package handlers

import (
	"net/http"
	"time"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles order-related HTTP requests
type OrderHandlers struct {
	orderService services.OrderService
}

func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// ListOrdersRequest represents query parameters for listing orders
type ListOrdersRequest struct {
	Search string `query:"search"`
	Status string `query:"status"`
	Date   string `query:"date"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// ListOrders handles GET /v1/orders
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	var req ListOrdersRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	filter := &models.OrderFilter{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Status != "" {
		filter.Status = &req.Status
	}
	if req.Date != "" {
		if err := common.ValidateDateFormat(req.Date, "date"); err != nil {
			return common.SendValidationError(c, "date", err.Error())
		}
		parsed, _ := time.Parse("2006-01-02", req.Date)
		filter.Date = &parsed
	}

	orders, err := h.orderService.ListOrders(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// GetOrder handles GET /v1/orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	order, items, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"order": order,
		"items": items,
	})
}

// CreateOrder handles POST /v1/orders. The authenticated user is recorded
// as the order's creator.
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req models.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.UserID = userID

	order, err := h.orderService.PlaceOrder(ctx, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// DeleteOrder handles DELETE /v1/orders/:id
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
