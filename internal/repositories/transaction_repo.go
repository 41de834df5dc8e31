package repositories

import (
	"context"
	"fmt"

	"github.com/waellejmi/pos-app/internal/models"
)

type TransactionRepository interface {
	WithTx(q DBTX) TransactionRepository
	Create(ctx context.Context, transaction *models.Transaction) error
	List(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error)
}

type transactionRepo struct {
	db DBTX
}

func NewTransactionRepo(db DBTX) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) WithTx(q DBTX) TransactionRepository {
	return &transactionRepo{db: q}
}

func (r *transactionRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, product_id, transaction_type, quantity, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, tableTransactions)
	_, err := r.db.Exec(ctx, query, transaction.ID, transaction.ProductID, transaction.TransactionType, transaction.Quantity, transaction.TransactionDate)
	return err
}

func (r *transactionRepo) List(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error) {
	queryBase := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, transactionColumns, tableTransactions)
	args := []interface{}{}
	conditionCount := 0

	if filter.ProductID != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND product_id = $%d`, conditionCount)
		args = append(args, *filter.ProductID)
	}
	if filter.TransactionType != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND transaction_type = $%d`, conditionCount)
		args = append(args, *filter.TransactionType)
	}

	queryBase += ` ORDER BY transaction_date DESC`

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

	var transactions []*models.Transaction
	for rows.Next() {
		transaction := &models.Transaction{}
		if err := rows.Scan(&transaction.ID, &transaction.ProductID, &transaction.TransactionType, &transaction.Quantity, &transaction.TransactionDate, &transaction.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}
