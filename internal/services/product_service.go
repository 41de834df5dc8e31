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

const productCacheTTL = 10 * time.Minute

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	Name         string     `json:"name"`
	Barcode      *string    `json:"barcode"`
	Description  *string    `json:"description"`
	Price        float64    `json:"price"`
	Discount     float64    `json:"discount"`
	Cost         float64    `json:"cost"`
	Stock        int        `json:"stock"`
	MinThreshold int        `json:"min_threshold"`
	MaxThreshold int        `json:"max_threshold"`
	IsActive     bool       `json:"is_active"`
	SupplierID   *uuid.UUID `json:"supplier_id"`
	CategoryID   *uuid.UUID `json:"category_id"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, input *ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error)
	SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) (*models.Product, error)
}

type productService struct {
	db          repositories.DB
	productRepo repositories.ProductRepository
	inventory   InventoryService
	images      ImageService
	cache       caching.CacheService
}

func NewProductService(db repositories.DB, productRepo repositories.ProductRepository, inventory InventoryService, images ImageService, cache caching.CacheService) ProductService {
	return &productService{
		db:          db,
		productRepo: productRepo,
		inventory:   inventory,
		images:      images,
		cache:       cache,
	}
}

func (s *productService) validateInput(ctx context.Context, input *ProductInput, excludeID *uuid.UUID) error {
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return common.NewValidationError("name", err.Error())
	}
	if input.Price < 0 {
		return common.NewValidationError("price", "price cannot be negative")
	}
	if input.Cost < 0 {
		return common.NewValidationError("cost", "cost cannot be negative")
	}
	if input.Discount < 0 || input.Discount > 100 {
		return common.NewValidationError("discount", "discount must be between 0 and 100")
	}
	if input.Stock < 0 {
		return common.NewValidationError("stock", "stock cannot be negative")
	}
	if input.MinThreshold < 0 || input.MaxThreshold < 0 {
		return common.NewValidationError("thresholds", "thresholds cannot be negative")
	}
	if input.MaxThreshold > 0 && input.MinThreshold > input.MaxThreshold {
		return common.NewValidationError("min_threshold", "min threshold cannot exceed max threshold")
	}

	nameTaken, err := s.productRepo.NameExists(ctx, input.Name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check product name: %w", err)
	}
	if nameTaken {
		return common.NewValidationError("name", "product name already exists")
	}
	if input.Barcode != nil && *input.Barcode != "" {
		barcodeTaken, err := s.productRepo.BarcodeExists(ctx, *input.Barcode, excludeID)
		if err != nil {
			return fmt.Errorf("failed to check barcode: %w", err)
		}
		if barcodeTaken {
			return common.NewValidationError("barcode", "barcode already exists")
		}
	}
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, input *ProductInput) (*models.Product, error) {
	if err := s.validateInput(ctx, input, nil); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:           uuid.New(),
		Name:         input.Name,
		Barcode:      input.Barcode,
		Description:  input.Description,
		Price:        input.Price,
		Discount:     input.Discount,
		Cost:         input.Cost,
		Stock:        input.Stock,
		MinThreshold: input.MinThreshold,
		MaxThreshold: input.MaxThreshold,
		IsActive:     input.IsActive,
		SupplierID:   input.SupplierID,
		CategoryID:   input.CategoryID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	cached, err := s.cache.GetProduct(ctx, id)
	if err != nil {
		log.Printf("WARN: product cache read failed for %s: %v", id, err)
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("product", id.String())
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.cache.SetProduct(ctx, product, productCacheTTL); err != nil {
		log.Printf("WARN: product cache write failed for %s: %v", id, err)
	}
	return product, nil
}

// UpdateProduct writes the product fields and, when the requested stock
// differs from the stored stock, records the difference in the ledger: an
// addition when stock grew, a removal when it shrank. The field update and
// the ledger append share one transaction.
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*models.Product, error) {
	if err := s.validateInput(ctx, input, &id); err != nil {
		return nil, err
	}

	current, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("product", id.String())
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product := &models.Product{
		ID:           id,
		Name:         input.Name,
		Barcode:      input.Barcode,
		ImageURL:     current.ImageURL,
		Description:  input.Description,
		Price:        input.Price,
		Discount:     input.Discount,
		Cost:         input.Cost,
		Stock:        current.Stock,
		MinThreshold: input.MinThreshold,
		MaxThreshold: input.MaxThreshold,
		IsActive:     input.IsActive,
		SupplierID:   input.SupplierID,
		CategoryID:   input.CategoryID,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.productRepo.WithTx(tx).Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if delta := input.Stock - current.Stock; delta != 0 {
		reason := models.TransactionAddition
		if delta < 0 {
			reason = models.TransactionRemoval
		}
		if _, err := s.inventory.AdjustStock(ctx, tx, id, delta, reason); err != nil {
			return nil, err
		}
		product.Stock = input.Stock
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product update: %w", err)
	}

	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate product cache for %s: %v", id, err)
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	exists, err := s.productRepo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return common.NewNotFoundError("product", id.String())
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if err := s.images.DeleteProductImage(ctx, id); err != nil {
		log.Printf("WARN: failed to delete stored image for %s: %v", id, err)
	}
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate product cache for %s: %v", id, err)
	}
	return nil
}

func (s *productService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	return s.productRepo.List(ctx, filter)
}

func (s *productService) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("product", id.String())
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product.ImageURL = &imageURL
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product image: %w", err)
	}
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate product cache for %s: %v", id, err)
	}
	return product, nil
}
