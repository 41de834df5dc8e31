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

// SupplierInput carries the writable supplier fields, plus the optional
// product id list that re-homes products to this supplier on update.
type SupplierInput struct {
	Name        string      `json:"name"`
	ContactName string      `json:"contact_name"`
	Email       string      `json:"email"`
	Phone       *string     `json:"phone"`
	Address     *string     `json:"address"`
	ProductIDs  []uuid.UUID `json:"product_ids"`
}

type SupplierService interface {
	CreateSupplier(ctx context.Context, input *SupplierInput) (*models.Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	UpdateSupplier(ctx context.Context, id uuid.UUID, input *SupplierInput) (*models.Supplier, error)
	DeleteSupplier(ctx context.Context, id uuid.UUID) error
	ListSuppliers(ctx context.Context, filter *models.SupplierFilter) ([]*models.Supplier, error)
}

type supplierService struct {
	db           repositories.DB
	supplierRepo repositories.SupplierRepository
	productRepo  repositories.ProductRepository
	cache        caching.CacheService
}

func NewSupplierService(db repositories.DB, supplierRepo repositories.SupplierRepository, productRepo repositories.ProductRepository, cache caching.CacheService) SupplierService {
	return &supplierService{
		db:           db,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		cache:        cache,
	}
}

func (s *supplierService) validateInput(ctx context.Context, input *SupplierInput, excludeID *uuid.UUID) error {
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return common.NewValidationError("name", err.Error())
	}
	if err := common.ValidateRequiredString(input.ContactName, "contact_name"); err != nil {
		return common.NewValidationError("contact_name", err.Error())
	}
	if err := common.ValidateRequiredString(input.Email, "email"); err != nil {
		return common.NewValidationError("email", err.Error())
	}

	nameTaken, err := s.supplierRepo.NameExists(ctx, input.Name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check supplier name: %w", err)
	}
	if nameTaken {
		return common.NewValidationError("name", "supplier name already exists")
	}
	emailTaken, err := s.supplierRepo.EmailExists(ctx, input.Email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check supplier email: %w", err)
	}
	if emailTaken {
		return common.NewValidationError("email", "supplier email already exists")
	}
	return nil
}

func (s *supplierService) CreateSupplier(ctx context.Context, input *SupplierInput) (*models.Supplier, error) {
	if err := s.validateInput(ctx, input, nil); err != nil {
		return nil, err
	}

	supplier := &models.Supplier{
		ID:          uuid.New(),
		Name:        input.Name,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("supplier", id.String())
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return supplier, nil
}

// UpdateSupplier writes the supplier fields and, when product ids are given,
// syncs supplier membership the same way category updates do.
func (s *supplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *SupplierInput) (*models.Supplier, error) {
	exists, err := s.supplierRepo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check supplier: %w", err)
	}
	if !exists {
		return nil, common.NewNotFoundError("supplier", id.String())
	}
	if err := s.validateInput(ctx, input, &id); err != nil {
		return nil, err
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

	supplier := &models.Supplier{
		ID:          id,
		Name:        input.Name,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.supplierRepo.WithTx(tx).Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	if input.ProductIDs != nil {
		if err := s.productRepo.WithTx(tx).AssignSupplier(ctx, id, input.ProductIDs); err != nil {
			return nil, fmt.Errorf("failed to sync supplier products: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit supplier update: %w", err)
	}

	if input.ProductIDs != nil {
		if err := s.cache.InvalidateProducts(ctx); err != nil {
			log.Printf("WARN: failed to invalidate product cache: %v", err)
		}
	}
	return supplier, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	exists, err := s.supplierRepo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check supplier: %w", err)
	}
	if !exists {
		return common.NewNotFoundError("supplier", id.String())
	}
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}

func (s *supplierService) ListSuppliers(ctx context.Context, filter *models.SupplierFilter) ([]*models.Supplier, error) {
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	return s.supplierRepo.List(ctx, filter)
}
