package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductFilter holds search and filter criteria for product listings
type ProductFilter struct {
	Search          string `json:"search,omitempty"`           // Substring match on name
	IsActive        *bool  `json:"is_active,omitempty"`        // Filter by active flag
	NeedsRestocking *bool  `json:"needs_restocking,omitempty"` // stock - min_threshold < 10
	Limit           int    `json:"limit,omitempty"`            // Page size (default: 15)
	Offset          int    `json:"offset,omitempty"`           // Page offset
}

type Product struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Barcode      *string    `json:"barcode" db:"barcode"`
	ImageURL     *string    `json:"image_url" db:"image_url"`
	Description  *string    `json:"description" db:"description"`
	Price        float64    `json:"price" db:"price"`
	Discount     float64    `json:"discount" db:"discount"`
	Cost         float64    `json:"cost" db:"cost"`
	Stock        int        `json:"stock" db:"stock"`
	MinThreshold int        `json:"min_threshold" db:"min_threshold"`
	MaxThreshold int        `json:"max_threshold" db:"max_threshold"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	SupplierID   *uuid.UUID `json:"supplier_id" db:"supplier_id"`
	CategoryID   *uuid.UUID `json:"category_id" db:"category_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
