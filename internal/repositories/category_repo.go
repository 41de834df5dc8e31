package repositories

import (
	"context"
	"fmt"

	"github.com/waellejmi/pos-app/internal/models"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	WithTx(q DBTX) CategoryRepository
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.CategoryFilter) ([]*models.Category, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}

type categoryRepo struct {
	db DBTX
}

func NewCategoryRepo(db DBTX) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) WithTx(q DBTX) CategoryRepository {
	return &categoryRepo{db: q}
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, tableCategories)
	_, err := r.db.Exec(ctx, query, category.ID, category.Name, category.Description)
	return err
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category := &models.Category{}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, categoryColumns, tableCategories)
	err := r.db.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`, tableCategories)
	_, err := r.db.Exec(ctx, query, category.Name, category.Description, category.ID)
	return err
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableCategories)
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *categoryRepo) List(ctx context.Context, filter *models.CategoryFilter) ([]*models.Category, error) {
	queryBase := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, categoryColumns, tableCategories)
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

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, tableCategories)
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *categoryRepo) NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if excludeID != nil {
		query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1 AND id <> $2)`, tableCategories)
		err := r.db.QueryRow(ctx, query, name, *excludeID).Scan(&exists)
		return exists, err
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1)`, tableCategories)
	err := r.db.QueryRow(ctx, query, name).Scan(&exists)
	return exists, err
}
