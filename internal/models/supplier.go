package models

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	ContactName string    `json:"contact_name" db:"contact_name"`
	Email       string    `json:"email" db:"email"`
	Phone       *string   `json:"phone" db:"phone"`
	Address     *string   `json:"address" db:"address"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// SupplierFilter holds search criteria for supplier listings
type SupplierFilter struct {
	Search string `json:"search,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}
