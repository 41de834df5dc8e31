package services

import (
	"context"
	"io"
	"time"

	"github.com/waellejmi/pos-app/internal/models"

	"github.com/google/uuid"
)

// stubCache is a no-op cache for service tests: always misses, never fails.
type stubCache struct{}

func (stubCache) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	return nil, nil
}

func (stubCache) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	return nil
}

func (stubCache) DeleteProduct(ctx context.Context, productID uuid.UUID) error { return nil }

func (stubCache) GetCategory(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	return nil, nil
}

func (stubCache) SetCategory(ctx context.Context, category *models.Category, ttl time.Duration) error {
	return nil
}

func (stubCache) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error { return nil }

func (stubCache) InvalidateProducts(ctx context.Context) error { return nil }

func (stubCache) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}

func (stubCache) GetString(ctx context.Context, key string) (string, error) { return "", nil }

// recordingImages records which product images were deleted; everything else
// is a no-op.
type recordingImages struct {
	deleted []uuid.UUID
}

func (r *recordingImages) UploadProductImage(ctx context.Context, productID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	return "", nil
}

func (r *recordingImages) GetPresignedURL(productID uuid.UUID, objectName string, expiry time.Duration) (string, error) {
	return "", nil
}

func (r *recordingImages) DeleteProductImage(ctx context.Context, productID uuid.UUID) error {
	r.deleted = append(r.deleted, productID)
	return nil
}

func (r *recordingImages) EnsureBucketExists(ctx context.Context) error { return nil }
