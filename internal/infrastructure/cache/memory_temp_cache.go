package cache

import (
	"context"
	"sort"
	"sync"

	"github.com/retailpos/backend/internal/domain/pos"
)

// InMemoryTemporaryProductCache keeps register-entered products in process
// memory. Entries vanish on restart, so this is a test double and a last
// resort; production wiring backs the cache with the terminal database.
type InMemoryTemporaryProductCache struct {
	mu      sync.RWMutex
	entries map[string]*pos.TemporaryProduct
}

// NewInMemoryTemporaryProductCache creates an empty cache
func NewInMemoryTemporaryProductCache() *InMemoryTemporaryProductCache {
	return &InMemoryTemporaryProductCache{
		entries: make(map[string]*pos.TemporaryProduct),
	}
}

// Get returns the temporary product for a barcode, or nil when absent
func (c *InMemoryTemporaryProductCache) Get(ctx context.Context, barcode string) (*pos.TemporaryProduct, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, ok := c.entries[barcode]
	if !ok {
		return nil, nil
	}
	copied := *product
	return &copied, nil
}

// Put stores or replaces the entry for the product's barcode
func (c *InMemoryTemporaryProductCache) Put(ctx context.Context, product *pos.TemporaryProduct) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := *product
	c.entries[product.Barcode] = &copied
	return nil
}

// Delete removes the entry for a barcode. Missing entries are not an error.
func (c *InMemoryTemporaryProductCache) Delete(ctx context.Context, barcode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, barcode)
	return nil
}

// List returns all cached temporary products ordered by creation time
func (c *InMemoryTemporaryProductCache) List(ctx context.Context) ([]*pos.TemporaryProduct, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]*pos.TemporaryProduct, 0, len(c.entries))
	for _, product := range c.entries {
		copied := *product
		products = append(products, &copied)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

// Ensure InMemoryTemporaryProductCache implements TemporaryProductCache
var _ pos.TemporaryProductCache = (*InMemoryTemporaryProductCache)(nil)
