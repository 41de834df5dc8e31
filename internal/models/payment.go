package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentFilter holds filter criteria for payment listings
type PaymentFilter struct {
	Status *string `json:"status,omitempty"`
	Limit  int     `json:"limit,omitempty"`
	Offset int     `json:"offset,omitempty"`
}

// Payment is owned one-to-one by an Order via orders.payment_id. Payments
// are created before the order that references them.
type Payment struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Status        string     `json:"status" db:"status"`
	PaymentDate   *time.Time `json:"payment_date" db:"payment_date"`
	PaymentMethod string     `json:"payment_method" db:"payment_method"`
	Amount        float64    `json:"amount" db:"amount"`
	TaxAmount     float64    `json:"tax_amount" db:"tax_amount"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
