package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bakery-service/internal/models"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis client used as a read-through cache for
// catalog queries.
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func catalogKey(category string) string {
	if category == "" {
		return "catalog:all"
	}
	return "catalog:" + category
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// GetCatalog returns the cached product list for a category, or redis.Nil
// wrapped in the error when the key is absent or expired.
func (c *Client) GetCatalog(ctx context.Context, category string) ([]models.Product, error) {
	data, err := c.rdb.Get(ctx, catalogKey(category)).Bytes()
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("corrupt catalog cache entry: %w", err)
	}
	return products, nil
}

// SetCatalog caches a product list under its category key with the
// configured TTL.
func (c *Client) SetCatalog(ctx context.Context, category string, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, catalogKey(category), data, c.ttl).Err()
}

// GetProduct returns a cached single product.
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	data, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("corrupt product cache entry: %w", err)
	}
	return &product, nil
}

// SetProduct caches a single product with the configured TTL.
func (c *Client) SetProduct(ctx context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, productKey(product.ID), data, c.ttl).Err()
}

// InvalidateCatalog drops all cached catalog entries. Called after the
// seed load so a fresh process never serves a stale listing.
func (c *Client) InvalidateCatalog(ctx context.Context) error {
	keys := []string{catalogKey("")}
	for _, cat := range models.Categories() {
		keys = append(keys, catalogKey(cat.ID))
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// IsCacheMiss reports whether err is an absent-key result rather than a
// real Redis failure.
func IsCacheMiss(err error) bool {
	return err == redis.Nil
}
