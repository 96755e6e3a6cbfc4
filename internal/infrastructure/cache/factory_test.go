package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backend/internal/domain/pos"
	"github.com/retailpos/backend/internal/domain/printing"
	"github.com/retailpos/backend/internal/infrastructure/config"
)

type stubTempCache struct{}

func (stubTempCache) Get(ctx context.Context, barcode string) (*pos.TemporaryProduct, error) {
	return nil, nil
}
func (stubTempCache) Put(ctx context.Context, product *pos.TemporaryProduct) error { return nil }
func (stubTempCache) Delete(ctx context.Context, barcode string) error             { return nil }
func (stubTempCache) List(ctx context.Context) ([]*pos.TemporaryProduct, error)    { return nil, nil }

type stubStage struct{}

func (stubStage) Put(ctx context.Context, payload *printing.ReceiptPayload) error { return nil }
func (stubStage) Get(ctx context.Context, orderNumber string) (*printing.ReceiptPayload, error) {
	return nil, nil
}
func (stubStage) Latest(ctx context.Context) (*printing.ReceiptPayload, error) { return nil, nil }

func TestFactory_PrefersDurableStoresWithoutRedis(t *testing.T) {
	durableCache := stubTempCache{}
	durableStage := stubStage{}
	factory := NewFactory(config.RedisConfig{Enabled: false},
		WithDurableStores(durableCache, durableStage))

	tempCache, err := factory.TemporaryProductCache()
	require.NoError(t, err)
	assert.Equal(t, durableCache, tempCache)

	stage, err := factory.ReceiptStage()
	require.NoError(t, err)
	assert.Equal(t, durableStage, stage)
}

func TestFactory_FallsBackToMemoryWithoutDurableStores(t *testing.T) {
	factory := NewFactory(config.RedisConfig{Enabled: false})

	tempCache, err := factory.TemporaryProductCache()
	require.NoError(t, err)
	assert.IsType(t, &InMemoryTemporaryProductCache{}, tempCache)

	stage, err := factory.ReceiptStage()
	require.NoError(t, err)
	assert.IsType(t, &InMemoryReceiptStage{}, stage)
}
