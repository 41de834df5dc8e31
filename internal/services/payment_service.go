package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

func validPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// PaymentInput carries the writable payment fields. PaymentDate is an
// optional RFC3339 string parsed during validation.
type PaymentInput struct {
	Status        string  `json:"status"`
	PaymentDate   *string `json:"payment_date"`
	PaymentMethod string  `json:"payment_method"`
	Amount        float64 `json:"amount"`
	TaxAmount     float64 `json:"tax_amount"`
}

type PaymentService interface {
	CreatePayment(ctx context.Context, input *PaymentInput) (*models.Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, input *PaymentInput) (*models.Payment, error)
	ListPayments(ctx context.Context, filter *models.PaymentFilter) ([]*models.Payment, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
}

func NewPaymentService(paymentRepo repositories.PaymentRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo}
}

func (s *paymentService) validateInput(input *PaymentInput) (*time.Time, error) {
	status := input.Status
	if status == "" {
		status = PaymentStatusPending
		input.Status = status
	}
	if !validPaymentStatus(status) {
		return nil, common.NewValidationError("status", fmt.Sprintf("unknown payment status %q", status))
	}
	if err := common.ValidateRequiredString(input.PaymentMethod, "payment_method"); err != nil {
		return nil, common.NewValidationError("payment_method", err.Error())
	}
	if input.Amount <= 0 {
		return nil, common.NewValidationError("amount", "amount must be positive")
	}
	if input.TaxAmount < 0 {
		return nil, common.NewValidationError("tax_amount", "tax amount cannot be negative")
	}

	if input.PaymentDate != nil && *input.PaymentDate != "" {
		parsed, err := time.Parse(time.RFC3339, *input.PaymentDate)
		if err != nil {
			return nil, common.NewValidationError("payment_date", "must be an RFC3339 timestamp")
		}
		return &parsed, nil
	}
	return nil, nil
}

func (s *paymentService) CreatePayment(ctx context.Context, input *PaymentInput) (*models.Payment, error) {
	paymentDate, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ID:            uuid.New(),
		Status:        input.Status,
		PaymentDate:   paymentDate,
		PaymentMethod: input.PaymentMethod,
		Amount:        input.Amount,
		TaxAmount:     input.TaxAmount,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("payment", id.String())
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, id uuid.UUID, input *PaymentInput) (*models.Payment, error) {
	exists, err := s.paymentRepo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check payment: %w", err)
	}
	if !exists {
		return nil, common.NewNotFoundError("payment", id.String())
	}
	paymentDate, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ID:            id,
		Status:        input.Status,
		PaymentDate:   paymentDate,
		PaymentMethod: input.PaymentMethod,
		Amount:        input.Amount,
		TaxAmount:     input.TaxAmount,
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter *models.PaymentFilter) ([]*models.Payment, error) {
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	if filter.Status != nil && !validPaymentStatus(*filter.Status) {
		return nil, common.NewValidationError("status", fmt.Sprintf("unknown payment status %q", *filter.Status))
	}
	return s.paymentRepo.List(ctx, filter)
}
