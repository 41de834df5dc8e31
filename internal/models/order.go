package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether status is one of the known order statuses.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderFilter holds search and filter criteria for order listings
type OrderFilter struct {
	Search string     `json:"search,omitempty"` // Substring match on order_number
	Status *string    `json:"status,omitempty"` // Status filter
	Date   *time.Time `json:"date,omitempty"`   // Orders created on this calendar date
	Limit  int        `json:"limit,omitempty"`  // Page size (default: 15)
	Offset int        `json:"offset,omitempty"` // Page offset
}

type Order struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	OrderNumber     string     `json:"order_number" db:"order_number"`
	PaymentID       uuid.UUID  `json:"payment_id" db:"payment_id"`
	CustomerID      *uuid.UUID `json:"customer_id" db:"customer_id"`
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	Status          string     `json:"status" db:"status"`
	CompletedAt     *time.Time `json:"completed_at" db:"completed_at"`
	Comments        *string    `json:"comments" db:"comments"`
	ShippingAddress *string    `json:"shipping_address" db:"shipping_address"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// OrderItemInput is one validated line of an incoming order.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

// PlaceOrderInput is the validated payload for order placement.
type PlaceOrderInput struct {
	OrderNumber     string           `json:"order_number"`
	PaymentID       uuid.UUID        `json:"payment_id"`
	CustomerID      *uuid.UUID       `json:"customer_id"`
	UserID          uuid.UUID        `json:"user_id"`
	CompletedAt     *string          `json:"completed_at"` // RFC3339, parsed during validation
	Status          string           `json:"status"`
	Comments        *string          `json:"comments"`
	ShippingAddress *string          `json:"shipping_address"`
	Items           []OrderItemInput `json:"items"`
}
