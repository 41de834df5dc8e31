package repositories

import (
	"context"
	"fmt"

	"github.com/waellejmi/pos-app/internal/models"

	"github.com/google/uuid"
)

type ProductRepository interface {
	WithTx(q DBTX) ProductRepository
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error)
	ListNeedingRestock(ctx context.Context, limit int) ([]*models.Product, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	BarcodeExists(ctx context.Context, barcode string, excludeID *uuid.UUID) (bool, error)
	AssignCategory(ctx context.Context, categoryID uuid.UUID, productIDs []uuid.UUID) error
	AssignSupplier(ctx context.Context, supplierID uuid.UUID, productIDs []uuid.UUID) error
}

type productRepo struct {
	db DBTX
}

func NewProductRepo(db DBTX) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) WithTx(q DBTX) ProductRepository {
	return &productRepo{db: q}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, barcode, image_url, description, price, discount, cost, stock, min_threshold, max_threshold, is_active, supplier_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	`, tableProducts)
	_, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Barcode, product.ImageURL, product.Description, product.Price, product.Discount, product.Cost, product.Stock, product.MinThreshold, product.MaxThreshold, product.IsActive, product.SupplierID, product.CategoryID)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, productColumns, tableProducts)
	err := r.db.QueryRow(ctx, query, id).Scan(&product.ID, &product.Name, &product.Barcode, &product.ImageURL, &product.Description, &product.Price, &product.Discount, &product.Cost, &product.Stock, &product.MinThreshold, &product.MaxThreshold, &product.IsActive, &product.SupplierID, &product.CategoryID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, barcode = $2, image_url = $3, description = $4, price = $5, discount = $6, cost = $7, stock = $8, min_threshold = $9, max_threshold = $10, is_active = $11, supplier_id = $12, category_id = $13, updated_at = NOW()
		WHERE id = $14
	`, tableProducts)
	_, err := r.db.Exec(ctx, query, product.Name, product.Barcode, product.ImageURL, product.Description, product.Price, product.Discount, product.Cost, product.Stock, product.MinThreshold, product.MaxThreshold, product.IsActive, product.SupplierID, product.CategoryID, product.ID)
	return err
}

func (r *productRepo) UpdateStock(ctx context.Context, id uuid.UUID, stock int) error {
	query := fmt.Sprintf(`UPDATE %s SET stock = $1, updated_at = NOW() WHERE id = $2`, tableProducts)
	_, err := r.db.Exec(ctx, query, stock, id)
	return err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableProducts)
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *productRepo) List(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
	queryBase := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, productColumns, tableProducts)
	args := []interface{}{}
	conditionCount := 0

	if filter.Search != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND name ILIKE $%d`, conditionCount)
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.IsActive != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND is_active = $%d`, conditionCount)
		args = append(args, *filter.IsActive)
	}
	if filter.NeedsRestocking != nil && *filter.NeedsRestocking {
		queryBase += ` AND (stock - min_threshold) < 10`
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

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Barcode, &product.ImageURL, &product.Description, &product.Price, &product.Discount, &product.Cost, &product.Stock, &product.MinThreshold, &product.MaxThreshold, &product.IsActive, &product.SupplierID, &product.CategoryID, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepo) ListNeedingRestock(ctx context.Context, limit int) ([]*models.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE is_active = TRUE AND (stock - min_threshold) < 10
		ORDER BY stock ASC
		LIMIT $1
	`, productColumns, tableProducts)
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Barcode, &product.ImageURL, &product.Description, &product.Price, &product.Discount, &product.Cost, &product.Stock, &product.MinThreshold, &product.MaxThreshold, &product.IsActive, &product.SupplierID, &product.CategoryID, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, tableProducts)
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *productRepo) NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if excludeID != nil {
		query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1 AND id <> $2)`, tableProducts)
		err := r.db.QueryRow(ctx, query, name, *excludeID).Scan(&exists)
		return exists, err
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1)`, tableProducts)
	err := r.db.QueryRow(ctx, query, name).Scan(&exists)
	return exists, err
}

func (r *productRepo) BarcodeExists(ctx context.Context, barcode string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if excludeID != nil {
		query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE barcode = $1 AND id <> $2)`, tableProducts)
		err := r.db.QueryRow(ctx, query, barcode, *excludeID).Scan(&exists)
		return exists, err
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE barcode = $1)`, tableProducts)
	err := r.db.QueryRow(ctx, query, barcode).Scan(&exists)
	return exists, err
}

// AssignCategory moves the given products into the category and detaches any
// products that were in it but are no longer listed.
func (r *productRepo) AssignCategory(ctx context.Context, categoryID uuid.UUID, productIDs []uuid.UUID) error {
	assign := fmt.Sprintf(`UPDATE %s SET category_id = $1, updated_at = NOW() WHERE id = ANY($2)`, tableProducts)
	if _, err := r.db.Exec(ctx, assign, categoryID, productIDs); err != nil {
		return err
	}
	detach := fmt.Sprintf(`UPDATE %s SET category_id = NULL, updated_at = NOW() WHERE category_id = $1 AND NOT (id = ANY($2))`, tableProducts)
	_, err := r.db.Exec(ctx, detach, categoryID, productIDs)
	return err
}

// AssignSupplier mirrors AssignCategory for the supplier relation.
func (r *productRepo) AssignSupplier(ctx context.Context, supplierID uuid.UUID, productIDs []uuid.UUID) error {
	assign := fmt.Sprintf(`UPDATE %s SET supplier_id = $1, updated_at = NOW() WHERE id = ANY($2)`, tableProducts)
	if _, err := r.db.Exec(ctx, assign, supplierID, productIDs); err != nil {
		return err
	}
	detach := fmt.Sprintf(`UPDATE %s SET supplier_id = NULL, updated_at = NOW() WHERE supplier_id = $1 AND NOT (id = ANY($2))`, tableProducts)
	_, err := r.db.Exec(ctx, detach, supplierID, productIDs)
	return err
}
