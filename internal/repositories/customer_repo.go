package repositories

import (
	"context"
	"fmt"

	"github.com/waellejmi/pos-app/internal/models"

	"github.com/google/uuid"
)

type CustomerRepository interface {
	WithTx(q DBTX) CustomerRepository
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.CustomerFilter) ([]*models.Customer, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
}

type customerRepo struct {
	db DBTX
}

func NewCustomerRepo(db DBTX) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) WithTx(q DBTX) CustomerRepository {
	return &customerRepo{db: q}
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`, tableCustomers)
	_, err := r.db.Exec(ctx, query, customer.ID, customer.Name, customer.Email, customer.Phone, customer.Address)
	return err
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer := &models.Customer{}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, customerColumns, tableCustomers)
	err := r.db.QueryRow(ctx, query, id).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, email = $2, phone = $3, address = $4, updated_at = NOW()
		WHERE id = $5
	`, tableCustomers)
	_, err := r.db.Exec(ctx, query, customer.Name, customer.Email, customer.Phone, customer.Address, customer.ID)
	return err
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableCustomers)
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *customerRepo) List(ctx context.Context, filter *models.CustomerFilter) ([]*models.Customer, error) {
	queryBase := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, customerColumns, tableCustomers)
	args := []interface{}{}
	conditionCount := 0

	if filter.Search != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND name ILIKE $%d`, conditionCount)
		args = append(args, "%"+filter.Search+"%")
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

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *customerRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, tableCustomers)
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *customerRepo) EmailExists(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if excludeID != nil {
		query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE email = $1 AND id <> $2)`, tableCustomers)
		err := r.db.QueryRow(ctx, query, email, *excludeID).Scan(&exists)
		return exists, err
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE email = $1)`, tableCustomers)
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}
