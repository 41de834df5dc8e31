package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/waellejmi/pos-app/internal/models"

	"github.com/google/uuid"
)

type OrderItemRepository interface {
	WithTx(q DBTX) OrderItemRepository
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
	BulkInsert(ctx context.Context, items []*models.OrderItem) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error)
}

type orderItemRepo struct {
	db DBTX
}

func NewOrderItemRepo(db DBTX) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) WithTx(q DBTX) OrderItemRepository {
	return &orderItemRepo{db: q}
}

func (r *orderItemRepo) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE order_id = $1`, tableOrderItems)
	_, err := r.db.Exec(ctx, query, orderID)
	return err
}

func (r *orderItemRepo) BulkInsert(ctx context.Context, items []*models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	valueClauses := make([]string, 0, len(items))
	args := []interface{}{}
	argCount := 0
	for _, item := range items {
		valueClauses = append(valueClauses, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, NOW())",
			argCount+1, argCount+2, argCount+3, argCount+4, argCount+5, argCount+6))
		args = append(args, item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice)
		argCount += 6
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, order_id, product_id, quantity, unit_price, total_price, created_at)
		VALUES %s
	`, tableOrderItems, strings.Join(valueClauses, ", "))
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *orderItemRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE order_id = $1 ORDER BY created_at ASC`, orderItemColumns, tableOrderItems)
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
