package handlers

import (
	"net/http"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandlers exposes the read-only inventory ledger. Ledger rows
// are only ever written by order placement and admin stock edits.
type TransactionHandlers struct {
	inventoryService services.InventoryService
}

func NewTransactionHandlers(inventoryService services.InventoryService) *TransactionHandlers {
	return &TransactionHandlers{inventoryService: inventoryService}
}

// ListTransactionsRequest represents query parameters for listing ledger rows
type ListTransactionsRequest struct {
	ProductID       string `query:"product_id"`
	TransactionType string `query:"transaction_type"`
	Limit           int    `query:"limit"`
	Offset          int    `query:"offset"`
}

// ListTransactions handles GET /v1/transactions
func (h *TransactionHandlers) ListTransactions(c echo.Context) error {
	var req ListTransactionsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	filter := &models.TransactionFilter{
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.ProductID != "" {
		productID, err := common.ValidateUUID(req.ProductID, "product_id")
		if err != nil {
			return common.SendValidationError(c, "product_id", err.Error())
		}
		filter.ProductID = &productID
	}
	if req.TransactionType != "" {
		filter.TransactionType = &req.TransactionType
	}

	transactions, err := h.inventoryService.ListTransactions(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})
}
