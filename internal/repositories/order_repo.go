package repositories

import (
	"context"
	"fmt"

	"github.com/waellejmi/pos-app/internal/models"

	"github.com/google/uuid"
)

type OrderRepository interface {
	WithTx(q DBTX) OrderRepository
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	OrderNumberExists(ctx context.Context, orderNumber string) (bool, error)
}

type orderRepo struct {
	db DBTX
}

func NewOrderRepo(db DBTX) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) WithTx(q DBTX) OrderRepository {
	return &orderRepo{db: q}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, order_number, payment_id, customer_id, user_id, status, completed_at, comments, shipping_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`, tableOrders)
	_, err := r.db.Exec(ctx, query, order.ID, order.OrderNumber, order.PaymentID, order.CustomerID, order.UserID, order.Status, order.CompletedAt, order.Comments, order.ShippingAddress)
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, orderColumns, tableOrders)
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.OrderNumber, &order.PaymentID, &order.CustomerID, &order.UserID, &order.Status, &order.CompletedAt, &order.Comments, &order.ShippingAddress, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableOrders)
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *orderRepo) List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error) {
	queryBase := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, orderColumns, tableOrders)
	args := []interface{}{}
	conditionCount := 0

	if filter.Search != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND order_number ILIKE $%d`, conditionCount)
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Status != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND status = $%d`, conditionCount)
		args = append(args, *filter.Status)
	}
	if filter.Date != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND DATE(created_at) = $%d`, conditionCount)
		args = append(args, filter.Date.Format("2006-01-02"))
	}

	queryBase += ` ORDER BY updated_at DESC`

	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, filter.Limit)
	if filter.Offset > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.OrderNumber, &order.PaymentID, &order.CustomerID, &order.UserID, &order.Status, &order.CompletedAt, &order.Comments, &order.ShippingAddress, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, tableOrders)
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *orderRepo) OrderNumberExists(ctx context.Context, orderNumber string) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE order_number = $1)`, tableOrders)
	err := r.db.QueryRow(ctx, query, orderNumber).Scan(&exists)
	return exists, err
}
