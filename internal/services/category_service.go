package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/waellejmi/pos-app/internal/caching"
	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CategoryInput carries the writable category fields, plus the optional
// product id list that re-homes products into this category on update.
type CategoryInput struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ProductIDs  []uuid.UUID `json:"product_ids"`
}

type CategoryService interface {
	CreateCategory(ctx context.Context, input *CategoryInput) (*models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input *CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context, filter *models.CategoryFilter) ([]*models.Category, error)
}

type categoryService struct {
	db           repositories.DB
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	cache        caching.CacheService
}

func NewCategoryService(db repositories.DB, categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, cache caching.CacheService) CategoryService {
	return &categoryService{
		db:           db,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        cache,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, input *CategoryInput) (*models.Category, error) {
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return nil, common.NewValidationError("name", err.Error())
	}
	nameTaken, err := s.categoryRepo.NameExists(ctx, input.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if nameTaken {
		return nil, common.NewValidationError("name", "category name already exists")
	}

	category := &models.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	cached, err := s.cache.GetCategory(ctx, id)
	if err != nil {
		log.Printf("WARN: category cache read failed for %s: %v", id, err)
	}
	if cached != nil {
		return cached, nil
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("category", id.String())
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if err := s.cache.SetCategory(ctx, category, productCacheTTL); err != nil {
		log.Printf("WARN: category cache write failed for %s: %v", id, err)
	}
	return category, nil
}

// UpdateCategory writes the category fields and, when product ids are given,
// syncs category membership: listed products are attached, previously
// attached products missing from the list are detached. Both run in one
// transaction.
func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input *CategoryInput) (*models.Category, error) {
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return nil, common.NewValidationError("name", err.Error())
	}
	exists, err := s.categoryRepo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return nil, common.NewNotFoundError("category", id.String())
	}
	nameTaken, err := s.categoryRepo.NameExists(ctx, input.Name, &id)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if nameTaken {
		return nil, common.NewValidationError("name", "category name already exists")
	}
	for i, productID := range input.ProductIDs {
		productExists, err := s.productRepo.ExistsByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to check product: %w", err)
		}
		if !productExists {
			return nil, common.NewValidationError(fmt.Sprintf("product_ids[%d]", i), "product does not exist")
		}
	}

	category := &models.Category{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.categoryRepo.WithTx(tx).Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if input.ProductIDs != nil {
		if err := s.productRepo.WithTx(tx).AssignCategory(ctx, id, input.ProductIDs); err != nil {
			return nil, fmt.Errorf("failed to sync category products: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit category update: %w", err)
	}

	if err := s.cache.DeleteCategory(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate category cache for %s: %v", id, err)
	}
	if input.ProductIDs != nil {
		if err := s.cache.InvalidateProducts(ctx); err != nil {
			log.Printf("WARN: failed to invalidate product cache: %v", err)
		}
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return common.NewNotFoundError("category", id.String())
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := s.cache.DeleteCategory(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate category cache for %s: %v", id, err)
	}
	return nil
}

func (s *categoryService) ListCategories(ctx context.Context, filter *models.CategoryFilter) ([]*models.Category, error) {
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	return s.categoryRepo.List(ctx, filter)
}
