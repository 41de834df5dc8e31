package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CustomerInput carries the writable customer fields.
type CustomerInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, input *CustomerInput) (*models.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	ListCustomers(ctx context.Context, filter *models.CustomerFilter) ([]*models.Customer, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) validateInput(ctx context.Context, input *CustomerInput, excludeID *uuid.UUID) error {
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return common.NewValidationError("name", err.Error())
	}
	if err := common.ValidateRequiredString(input.Email, "email"); err != nil {
		return common.NewValidationError("email", err.Error())
	}
	emailTaken, err := s.customerRepo.EmailExists(ctx, input.Email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check customer email: %w", err)
	}
	if emailTaken {
		return common.NewValidationError("email", "customer email already exists")
	}
	return nil
}

func (s *customerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*models.Customer, error) {
	if err := s.validateInput(ctx, input, nil); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("customer", id.String())
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*models.Customer, error) {
	exists, err := s.customerRepo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer: %w", err)
	}
	if !exists {
		return nil, common.NewNotFoundError("customer", id.String())
	}
	if err := s.validateInput(ctx, input, &id); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:      id,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	exists, err := s.customerRepo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check customer: %w", err)
	}
	if !exists {
		return common.NewNotFoundError("customer", id.String())
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (s *customerService) ListCustomers(ctx context.Context, filter *models.CustomerFilter) ([]*models.Customer, error) {
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	return s.customerRepo.List(ctx, filter)
}
