package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/retailpos/backend/internal/domain/pos"
)

const tempProductKeyPrefix = "pos:temp_product:"

// tempProductTTL bounds how long a register-entered product survives.
// Temporary products are meant for a single trading day.
const tempProductTTL = 24 * time.Hour

// RedisTemporaryProductCache stores register-entered products in Redis so
// they survive a terminal restart and are visible to other terminals of
// the same store.
type RedisTemporaryProductCache struct {
	client *redis.Client
}

// NewRedisTemporaryProductCache creates a cache backed by an existing client
func NewRedisTemporaryProductCache(client *redis.Client) *RedisTemporaryProductCache {
	return &RedisTemporaryProductCache{client: client}
}

// Get returns the temporary product for a barcode, or nil when absent
func (c *RedisTemporaryProductCache) Get(ctx context.Context, barcode string) (*pos.TemporaryProduct, error) {
	data, err := c.client.Get(ctx, tempProductKeyPrefix+barcode).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read temporary product: %w", err)
	}

	var product pos.TemporaryProduct
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to decode temporary product: %w", err)
	}
	return &product, nil
}

// Put stores or replaces the entry for the product's barcode
func (c *RedisTemporaryProductCache) Put(ctx context.Context, product *pos.TemporaryProduct) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode temporary product: %w", err)
	}

	if err := c.client.Set(ctx, tempProductKeyPrefix+product.Barcode, data, tempProductTTL).Err(); err != nil {
		return fmt.Errorf("failed to store temporary product: %w", err)
	}
	return nil
}

// Delete removes the entry for a barcode. Missing entries are not an error.
func (c *RedisTemporaryProductCache) Delete(ctx context.Context, barcode string) error {
	if err := c.client.Del(ctx, tempProductKeyPrefix+barcode).Err(); err != nil {
		return fmt.Errorf("failed to delete temporary product: %w", err)
	}
	return nil
}

// List returns all cached temporary products
func (c *RedisTemporaryProductCache) List(ctx context.Context) ([]*pos.TemporaryProduct, error) {
	products := make([]*pos.TemporaryProduct, 0)

	iter := c.client.Scan(ctx, 0, tempProductKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := c.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			// Expired between SCAN and GET
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read temporary product: %w", err)
		}

		var product pos.TemporaryProduct
		if err := json.Unmarshal(data, &product); err != nil {
			return nil, fmt.Errorf("failed to decode temporary product: %w", err)
		}
		products = append(products, &product)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan temporary products: %w", err)
	}

	return products, nil
}

// Ensure RedisTemporaryProductCache implements TemporaryProductCache
var _ pos.TemporaryProductCache = (*RedisTemporaryProductCache)(nil)
