package models

import (
	"time"

	"github.com/google/uuid"
)

// Inventory transaction types
const (
	TransactionAddition = "addition"
	TransactionRemoval  = "removal"
	TransactionSale     = "sale"
)

// TransactionFilter holds filter criteria for ledger listings
type TransactionFilter struct {
	ProductID       *uuid.UUID `json:"product_id,omitempty"`
	TransactionType *string    `json:"transaction_type,omitempty"`
	Limit           int        `json:"limit,omitempty"`
	Offset          int        `json:"offset,omitempty"`
}

// Transaction is one append-only inventory ledger row recording a
// stock-affecting event for a product.
type Transaction struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ProductID       uuid.UUID `json:"product_id" db:"product_id"`
	TransactionType string    `json:"transaction_type" db:"transaction_type"`
	Quantity        int       `json:"quantity" db:"quantity"`
	TransactionDate time.Time `json:"transaction_date" db:"transaction_date"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
