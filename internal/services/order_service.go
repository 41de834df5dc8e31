package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/waellejmi/pos-app/internal/caching"
	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, input *models.PlaceOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, []*models.OrderItem, error)
	ListOrders(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	db            repositories.DB
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	paymentRepo   repositories.PaymentRepository
	customerRepo  repositories.CustomerRepository
	userRepo      repositories.UserRepository
	productRepo   repositories.ProductRepository
	inventory     InventoryService
	cache         caching.CacheService
}

func NewOrderService(
	db repositories.DB,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	paymentRepo repositories.PaymentRepository,
	customerRepo repositories.CustomerRepository,
	userRepo repositories.UserRepository,
	productRepo repositories.ProductRepository,
	inventory InventoryService,
	cache caching.CacheService,
) OrderService {
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		paymentRepo:   paymentRepo,
		customerRepo:  customerRepo,
		userRepo:      userRepo,
		productRepo:   productRepo,
		inventory:     inventory,
		cache:         cache,
	}
}

// PlaceOrder validates the input against current data, then runs the order
// create, the item sync, and every stock adjustment inside one transaction.
// Any failure after Begin leaves no order, no items, and no stock change.
func (s *orderService) PlaceOrder(ctx context.Context, input *models.PlaceOrderInput) (*models.Order, error) {
	order, err := s.validatePlaceOrder(ctx, input)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.syncOrderItems(ctx, tx, order.ID, input.Items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	for _, item := range input.Items {
		if err := s.cache.DeleteProduct(ctx, item.ProductID); err != nil {
			log.Printf("WARN: failed to invalidate product cache for %s: %v", item.ProductID, err)
		}
	}

	return order, nil
}

// syncOrderItems replaces the order's line items wholesale and applies the
// sale stock decrement per line, strictly in list order so repeated product
// ids see the effect of earlier lines. A product that disappears between
// validation and sync aborts the whole order.
func (s *orderService) syncOrderItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, items []models.OrderItemInput) error {
	itemRepo := s.orderItemRepo.WithTx(tx)

	if err := itemRepo.DeleteByOrderID(ctx, orderID); err != nil {
		return fmt.Errorf("failed to clear order items: %w", err)
	}

	rows := make([]*models.OrderItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, &models.OrderItem{
			ID:         uuid.New(),
			OrderID:    orderID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: float64(item.Quantity) * item.UnitPrice,
		})
	}
	if err := itemRepo.BulkInsert(ctx, rows); err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}

	for _, item := range items {
		if _, err := s.inventory.AdjustStock(ctx, tx, item.ProductID, -item.Quantity, models.TransactionSale); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderService) validatePlaceOrder(ctx context.Context, input *models.PlaceOrderInput) (*models.Order, error) {
	if err := common.ValidateRequiredString(input.OrderNumber, "order_number"); err != nil {
		return nil, common.NewValidationError("order_number", err.Error())
	}
	exists, err := s.orderRepo.OrderNumberExists(ctx, input.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check order number: %w", err)
	}
	if exists {
		return nil, common.NewValidationError("order_number", "order number already exists")
	}

	status := input.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !models.ValidOrderStatus(status) {
		return nil, common.NewValidationError("status", fmt.Sprintf("unknown order status %q", status))
	}

	var completedAt *time.Time
	if input.CompletedAt != nil && *input.CompletedAt != "" {
		parsed, err := time.Parse(time.RFC3339, *input.CompletedAt)
		if err != nil {
			return nil, common.NewValidationError("completed_at", "must be an RFC3339 timestamp")
		}
		completedAt = &parsed
	}

	paymentExists, err := s.paymentRepo.ExistsByID(ctx, input.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check payment: %w", err)
	}
	if !paymentExists {
		return nil, common.NewValidationError("payment_id", "payment does not exist")
	}

	userExists, err := s.userRepo.ExistsByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !userExists {
		return nil, common.NewValidationError("user_id", "user does not exist")
	}

	if input.CustomerID != nil {
		customerExists, err := s.customerRepo.ExistsByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check customer: %w", err)
		}
		if !customerExists {
			return nil, common.NewValidationError("customer_id", "customer does not exist")
		}
	}

	if len(input.Items) == 0 {
		return nil, common.NewValidationError("items", "order must contain at least one item")
	}
	for i, item := range input.Items {
		if item.Quantity < 1 {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1")
		}
		if item.UnitPrice <= 0 {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].unit_price", i), "unit price must be positive")
		}
		productExists, err := s.productRepo.ExistsByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to check product: %w", err)
		}
		if !productExists {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].product_id", i), "product does not exist")
		}
	}

	return &models.Order{
		ID:              uuid.New(),
		OrderNumber:     input.OrderNumber,
		PaymentID:       input.PaymentID,
		CustomerID:      input.CustomerID,
		UserID:          input.UserID,
		Status:          status,
		CompletedAt:     completedAt,
		Comments:        input.Comments,
		ShippingAddress: input.ShippingAddress,
	}, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, []*models.OrderItem, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, common.NewNotFoundError("order", id.String())
		}
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}
	items, err := s.orderItemRepo.ListByOrderID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return order, items, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error) {
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	if filter.Status != nil && !models.ValidOrderStatus(*filter.Status) {
		return nil, common.NewValidationError("status", fmt.Sprintf("unknown order status %q", *filter.Status))
	}
	return s.orderRepo.List(ctx, filter)
}

// DeleteOrder removes the order and its line items. Stock consumed by the
// order is not restored; cancellations go through the admin stock edit.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	exists, err := s.orderRepo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check order: %w", err)
	}
	if !exists {
		return common.NewNotFoundError("order", id.String())
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.orderItemRepo.WithTx(tx).DeleteByOrderID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	if err := s.orderRepo.WithTx(tx).Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return tx.Commit(ctx)
}
