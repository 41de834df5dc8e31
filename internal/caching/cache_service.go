package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/waellejmi/pos-app/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Product caching
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	// Category caching
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*models.Category, error)
	SetCategory(ctx context.Context, category *models.Category, ttl time.Duration) error
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error

	// Cache invalidation
	InvalidateProducts(ctx context.Context) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
		parsedAddr = hostPort
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	key := fmt.Sprintf("pos:product:%s", productID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	key := fmt.Sprintf("pos:product:%s", product.ID.String())
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	key := fmt.Sprintf("pos:product:%s", productID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetCategory(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	key := fmt.Sprintf("pos:category:%s", categoryID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var category models.Category
	if err := json.Unmarshal(data, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *redisCacheService) SetCategory(ctx context.Context, category *models.Category, ttl time.Duration) error {
	key := fmt.Sprintf("pos:category:%s", category.ID.String())
	data, err := json.Marshal(category)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	key := fmt.Sprintf("pos:category:%s", categoryID.String())
	return r.client.Del(ctx, key).Err()
}

// InvalidateProducts drops every cached product. Used after bulk stock
// movements where per-key invalidation would be noisy.
func (r *redisCacheService) InvalidateProducts(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, "pos:product:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return val, nil
}
