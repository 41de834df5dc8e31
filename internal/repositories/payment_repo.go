package repositories

import (
	"context"
	"fmt"

	"github.com/waellejmi/pos-app/internal/models"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	WithTx(q DBTX) PaymentRepository
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context, filter *models.PaymentFilter) ([]*models.Payment, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type paymentRepo struct {
	db DBTX
}

func NewPaymentRepo(db DBTX) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) WithTx(q DBTX) PaymentRepository {
	return &paymentRepo{db: q}
}

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, status, payment_date, payment_method, amount, tax_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, tablePayments)
	_, err := r.db.Exec(ctx, query, payment.ID, payment.Status, payment.PaymentDate, payment.PaymentMethod, payment.Amount, payment.TaxAmount)
	return err
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment := &models.Payment{}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, paymentColumns, tablePayments)
	err := r.db.QueryRow(ctx, query, id).Scan(&payment.ID, &payment.Status, &payment.PaymentDate, &payment.PaymentMethod, &payment.Amount, &payment.TaxAmount, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepo) Update(ctx context.Context, payment *models.Payment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, payment_date = $2, payment_method = $3, amount = $4, tax_amount = $5, updated_at = NOW()
		WHERE id = $6
	`, tablePayments)
	_, err := r.db.Exec(ctx, query, payment.Status, payment.PaymentDate, payment.PaymentMethod, payment.Amount, payment.TaxAmount, payment.ID)
	return err
}

func (r *paymentRepo) List(ctx context.Context, filter *models.PaymentFilter) ([]*models.Payment, error) {
	queryBase := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, paymentColumns, tablePayments)
	args := []interface{}{}
	conditionCount := 0

	if filter.Status != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND status = $%d`, conditionCount)
		args = append(args, *filter.Status)
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

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.Status, &payment.PaymentDate, &payment.PaymentMethod, &payment.Amount, &payment.TaxAmount, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *paymentRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, tablePayments)
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}
