package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InventoryService applies signed stock deltas and keeps the ledger.
// AdjustStock never opens its own transaction; it writes through whatever
// handle the caller passes, so order placement and admin stock edits can
// run it inside their own ambient transactions.
type InventoryService interface {
	AdjustStock(ctx context.Context, q repositories.DBTX, productID uuid.UUID, delta int, reason string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error)
}

type inventoryService struct {
	productRepo     repositories.ProductRepository
	transactionRepo repositories.TransactionRepository
}

func NewInventoryService(productRepo repositories.ProductRepository, transactionRepo repositories.TransactionRepository) InventoryService {
	return &inventoryService{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
	}
}

// AdjustStock reads the product's current stock through q, writes stock+delta
// back, and appends one ledger row of type reason with the positive magnitude
// of delta. A zero delta is rejected: it would produce a meaningless ledger row.
func (s *inventoryService) AdjustStock(ctx context.Context, q repositories.DBTX, productID uuid.UUID, delta int, reason string) (*models.Transaction, error) {
	if delta == 0 {
		return nil, common.NewValidationError("delta", "stock delta must be non-zero")
	}
	switch reason {
	case models.TransactionAddition, models.TransactionRemoval, models.TransactionSale:
	default:
		return nil, common.NewValidationError("reason", fmt.Sprintf("unknown transaction type %q", reason))
	}

	productRepo := s.productRepo.WithTx(q)
	transactionRepo := s.transactionRepo.WithTx(q)

	product, err := productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("product", productID.String())
		}
		return nil, fmt.Errorf("failed to read product stock: %w", err)
	}

	if err := productRepo.UpdateStock(ctx, productID, product.Stock+delta); err != nil {
		return nil, fmt.Errorf("failed to write product stock: %w", err)
	}

	quantity := delta
	if quantity < 0 {
		quantity = -quantity
	}
	transaction := &models.Transaction{
		ID:              uuid.New(),
		ProductID:       productID,
		TransactionType: reason,
		Quantity:        quantity,
		TransactionDate: time.Now(),
	}
	if err := transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to append inventory transaction: %w", err)
	}

	return transaction, nil
}

func (s *inventoryService) ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error) {
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	if filter.TransactionType != nil {
		switch *filter.TransactionType {
		case models.TransactionAddition, models.TransactionRemoval, models.TransactionSale:
		default:
			return nil, common.NewValidationError("transaction_type", fmt.Sprintf("unknown transaction type %q", *filter.TransactionType))
		}
	}
	return s.transactionRepo.List(ctx, filter)
}
