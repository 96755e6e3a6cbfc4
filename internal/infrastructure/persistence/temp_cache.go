package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/retailpos/backend/internal/domain/pos"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const temporaryProductKeyPrefix = "temporary_product:"

// GormTemporaryProductCache keeps register-entered products in the
// terminal state table, so an unknown item priced once resolves
// instantly in every later session, across restarts. Entries never
// expire; they leave only when a catalog product takes the barcode.
type GormTemporaryProductCache struct {
	db *gorm.DB
}

// NewGormTemporaryProductCache creates a cache on the given database
func NewGormTemporaryProductCache(db *gorm.DB) *GormTemporaryProductCache {
	return &GormTemporaryProductCache{db: db}
}

// Get returns the temporary product for a barcode, or nil when absent
func (c *GormTemporaryProductCache) Get(ctx context.Context, barcode string) (*pos.TemporaryProduct, error) {
	var state TerminalState
	err := c.db.WithContext(ctx).
		Where("key = ?", temporaryProductKeyPrefix+barcode).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var product pos.TemporaryProduct
	if err := json.Unmarshal(state.Value, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Put stores or replaces the entry for the product's barcode
func (c *GormTemporaryProductCache) Put(ctx context.Context, product *pos.TemporaryProduct) error {
	value, err := json.Marshal(product)
	if err != nil {
		return err
	}

	state := TerminalState{
		Key:       temporaryProductKeyPrefix + product.Barcode,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&state).Error
}

// Delete removes the entry for a barcode. Missing entries are not an error.
func (c *GormTemporaryProductCache) Delete(ctx context.Context, barcode string) error {
	return c.db.WithContext(ctx).
		Where("key = ?", temporaryProductKeyPrefix+barcode).
		Delete(&TerminalState{}).Error
}

// List returns all cached temporary products ordered by creation time
func (c *GormTemporaryProductCache) List(ctx context.Context) ([]*pos.TemporaryProduct, error) {
	var states []TerminalState
	err := c.db.WithContext(ctx).
		Where("key LIKE ?", temporaryProductKeyPrefix+"%").
		Find(&states).Error
	if err != nil {
		return nil, err
	}

	products := make([]*pos.TemporaryProduct, 0, len(states))
	for _, state := range states {
		var product pos.TemporaryProduct
		if err := json.Unmarshal(state.Value, &product); err != nil {
			return nil, err
		}
		products = append(products, &product)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

// Ensure GormTemporaryProductCache implements TemporaryProductCache
var _ pos.TemporaryProductCache = (*GormTemporaryProductCache)(nil)
