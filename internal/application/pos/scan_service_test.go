package pos

import (
	"context"
	"errors"
	"testing"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/pos"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newScanServiceForTest(t *testing.T) (*ScanService, *SessionService, *MockProductRepository, *MockTemporaryProductCache) {
	t.Helper()
	store := new(MockSessionStore)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	sessions := NewSessionService(store)

	products := new(MockProductRepository)
	cache := new(MockTemporaryProductCache)
	service := NewScanService(sessions, products, cache, zap.NewNop())
	return service, sessions, products, cache
}

func activeSession(t *testing.T, sessions *SessionService) {
	t.Helper()
	_, err := sessions.Start(context.Background(), StartSessionRequest{CustomerName: "Alice"})
	require.NoError(t, err)
}

func TestScanService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("temporary cache wins over catalog", func(t *testing.T) {
		service, _, products, cache := newScanServiceForTest(t)
		temp, _ := pos.NewTemporaryProduct("123456", "Mystery Snack", decimal.NewFromFloat(1.99))
		cache.On("Get", mock.Anything, "123456").Return(temp, nil)

		item, err := service.Resolve(ctx, "123456")
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, pos.ResolvedKindTemporary, item.Kind)
		assert.Equal(t, "123456", item.ProductID)
		products.AssertNotCalled(t, "FindByBarcode")
	})

	t.Run("catalog hit resolves as catalog item", func(t *testing.T) {
		service, _, products, cache := newScanServiceForTest(t)
		cache.On("Get", mock.Anything, "654321").Return(nil, nil)

		product, _ := catalog.NewProductWithBarcode("SKU-1", "Coffee", "654321", valueobject.NewMoneyUSDFromFloat(4.50))
		products.On("FindByBarcode", mock.Anything, "654321").Return(product, nil)

		item, err := service.Resolve(ctx, "654321")
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, pos.ResolvedKindCatalog, item.Kind)
		assert.Equal(t, product.ID.String(), item.ProductID)
		assert.Equal(t, "Coffee", item.Name)
	})

	t.Run("unknown barcode resolves to nothing", func(t *testing.T) {
		service, _, products, cache := newScanServiceForTest(t)
		cache.On("Get", mock.Anything, "999").Return(nil, nil)
		products.On("FindByBarcode", mock.Anything, "999").Return(nil, nil)

		item, err := service.Resolve(ctx, "999")
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("catalog lookup failure is treated as a miss", func(t *testing.T) {
		service, _, products, cache := newScanServiceForTest(t)
		cache.On("Get", mock.Anything, "999").Return(nil, nil)
		products.On("FindByBarcode", mock.Anything, "999").Return(nil, errors.New("connection refused"))

		item, err := service.Resolve(ctx, "999")
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("inactive products do not resolve", func(t *testing.T) {
		service, _, products, cache := newScanServiceForTest(t)
		cache.On("Get", mock.Anything, "654321").Return(nil, nil)

		product, _ := catalog.NewProductWithBarcode("SKU-1", "Coffee", "654321", valueobject.NewMoneyUSDFromFloat(4.50))
		product.Deactivate()
		products.On("FindByBarcode", mock.Anything, "654321").Return(product, nil)

		item, err := service.Resolve(ctx, "654321")
		require.NoError(t, err)
		assert.Nil(t, item)
	})
}

func TestScanService_ProcessBarcode(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an active session", func(t *testing.T) {
		service, _, _, _ := newScanServiceForTest(t)
		_, err := service.ProcessBarcode(ctx, "123456")
		assert.ErrorIs(t, err, shared.ErrNoActiveSession)
	})

	t.Run("resolved scan lands in the cart", func(t *testing.T) {
		service, sessions, products, cache := newScanServiceForTest(t)
		activeSession(t, sessions)

		cache.On("Get", mock.Anything, "654321").Return(nil, nil)
		product, _ := catalog.NewProductWithBarcode("SKU-1", "Coffee", "654321", valueobject.NewMoneyUSDFromFloat(4.50))
		products.On("FindByBarcode", mock.Anything, "654321").Return(product, nil)

		outcome, err := service.ProcessBarcode(ctx, "654321")
		require.NoError(t, err)
		assert.False(t, outcome.Unresolved)
		require.NotNil(t, outcome.Session)
		require.Len(t, outcome.Session.Cart, 1)
		assert.Equal(t, 1, outcome.Session.Cart[0].Quantity)

		// a second scan of the same barcode aggregates
		outcome, err = service.ProcessBarcode(ctx, "654321")
		require.NoError(t, err)
		require.Len(t, outcome.Session.Cart, 1)
		assert.Equal(t, 2, outcome.Session.Cart[0].Quantity)
	})

	t.Run("unknown barcode reports unresolved and leaves the cart alone", func(t *testing.T) {
		service, sessions, products, cache := newScanServiceForTest(t)
		activeSession(t, sessions)

		cache.On("Get", mock.Anything, "999").Return(nil, nil)
		products.On("FindByBarcode", mock.Anything, "999").Return(nil, nil)

		outcome, err := service.ProcessBarcode(ctx, "999")
		require.NoError(t, err)
		assert.True(t, outcome.Unresolved)
		assert.Equal(t, "999", outcome.Barcode)

		active, err := sessions.GetActive(ctx)
		require.NoError(t, err)
		assert.Empty(t, active.Cart)
	})
}

func TestScanService_RegisterTemporaryProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and adds to cart", func(t *testing.T) {
		service, sessions, _, cache := newScanServiceForTest(t)
		activeSession(t, sessions)

		cache.On("Put", mock.Anything, mock.AnythingOfType("*pos.TemporaryProduct")).Return(nil)

		outcome, err := service.RegisterTemporaryProduct(ctx, RegisterTemporaryProductRequest{
			Barcode: "999",
			Name:    "Mystery Snack",
			Price:   1.99,
		})
		require.NoError(t, err)
		require.NotNil(t, outcome.Item)
		assert.Equal(t, string(pos.ResolvedKindTemporary), outcome.Item.Kind)
		require.Len(t, outcome.Session.Cart, 1)
		assert.Equal(t, "999", outcome.Session.Cart[0].ProductID)
		cache.AssertCalled(t, "Put", mock.Anything, mock.AnythingOfType("*pos.TemporaryProduct"))
	})

	t.Run("cache write failure surfaces", func(t *testing.T) {
		service, sessions, _, cache := newScanServiceForTest(t)
		activeSession(t, sessions)

		cache.On("Put", mock.Anything, mock.Anything).Return(errors.New("redis down"))

		_, err := service.RegisterTemporaryProduct(ctx, RegisterTemporaryProductRequest{
			Barcode: "999",
			Name:    "Mystery Snack",
			Price:   1.99,
		})
		assert.Error(t, err)
	})

	t.Run("requires an active session", func(t *testing.T) {
		service, _, _, _ := newScanServiceForTest(t)
		_, err := service.RegisterTemporaryProduct(ctx, RegisterTemporaryProductRequest{
			Barcode: "999",
			Name:    "Mystery Snack",
			Price:   1.99,
		})
		assert.ErrorIs(t, err, shared.ErrNoActiveSession)
	})
}
