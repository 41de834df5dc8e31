package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageService stores product images in object storage and hands out
// presigned download URLs.
type ImageService interface {
	UploadProductImage(ctx context.Context, productID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error)
	GetPresignedURL(productID uuid.UUID, objectName string, expiry time.Duration) (string, error)
	DeleteProductImage(ctx context.Context, productID uuid.UUID) error
	EnsureBucketExists(ctx context.Context) error
}

type imageService struct {
	client *minio.Client
	bucket string
}

func NewImageService(endpoint, accessKey, secretKey, bucket string, useSSL bool) (ImageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &imageService{client: client, bucket: bucket}, nil
}

func (m *imageService) UploadProductImage(ctx context.Context, productID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := fmt.Sprintf("products/%s%s", productID.String(), path.Ext(filename))
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func (m *imageService) GetPresignedURL(productID uuid.UUID, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(context.Background(), m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

// DeleteProductImage removes every stored object for the product. The upload
// extension is not persisted, so deletion goes by the products/<id> prefix.
func (m *imageService) DeleteProductImage(ctx context.Context, productID uuid.UUID) error {
	prefix := fmt.Sprintf("products/%s", productID.String())
	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if object.Err != nil {
			return object.Err
		}
		if err := m.client.RemoveObject(ctx, m.bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return err
		}
	}
	return nil
}

func (m *imageService) EnsureBucketExists(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
