package repositories

import (
	"context"
	"fmt"

	"github.com/waellejmi/pos-app/internal/models"

	"github.com/google/uuid"
)

type SupplierRepository interface {
	WithTx(q DBTX) SupplierRepository
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.SupplierFilter) ([]*models.Supplier, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
}

type supplierRepo struct {
	db DBTX
}

func NewSupplierRepo(db DBTX) SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) WithTx(q DBTX) SupplierRepository {
	return &supplierRepo{db: q}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, contact_name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, tableSuppliers)
	_, err := r.db.Exec(ctx, query, supplier.ID, supplier.Name, supplier.ContactName, supplier.Email, supplier.Phone, supplier.Address)
	return err
}

func (r *supplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, supplierColumns, tableSuppliers)
	err := r.db.QueryRow(ctx, query, id).Scan(&supplier.ID, &supplier.Name, &supplier.ContactName, &supplier.Email, &supplier.Phone, &supplier.Address, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, contact_name = $2, email = $3, phone = $4, address = $5, updated_at = NOW()
		WHERE id = $6
	`, tableSuppliers)
	_, err := r.db.Exec(ctx, query, supplier.Name, supplier.ContactName, supplier.Email, supplier.Phone, supplier.Address, supplier.ID)
	return err
}

func (r *supplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableSuppliers)
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *supplierRepo) List(ctx context.Context, filter *models.SupplierFilter) ([]*models.Supplier, error) {
	queryBase := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, supplierColumns, tableSuppliers)
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

	var suppliers []*models.Supplier
	for rows.Next() {
		supplier := &models.Supplier{}
		if err := rows.Scan(&supplier.ID, &supplier.Name, &supplier.ContactName, &supplier.Email, &supplier.Phone, &supplier.Address, &supplier.CreatedAt, &supplier.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}

func (r *supplierRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, tableSuppliers)
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *supplierRepo) NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if excludeID != nil {
		query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1 AND id <> $2)`, tableSuppliers)
		err := r.db.QueryRow(ctx, query, name, *excludeID).Scan(&exists)
		return exists, err
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1)`, tableSuppliers)
	err := r.db.QueryRow(ctx, query, name).Scan(&exists)
	return exists, err
}

func (r *supplierRepo) EmailExists(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if excludeID != nil {
		query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE email = $1 AND id <> $2)`, tableSuppliers)
		err := r.db.QueryRow(ctx, query, email, *excludeID).Scan(&exists)
		return exists, err
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE email = $1)`, tableSuppliers)
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}
