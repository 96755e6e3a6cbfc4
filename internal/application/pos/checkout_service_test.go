package pos

import (
	"context"
	"errors"
	"testing"

	"github.com/retailpos/backend/internal/domain/pos"
	"github.com/retailpos/backend/internal/domain/printing"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type checkoutFixture struct {
	service  *CheckoutService
	sessions *SessionService
	orders   *MockOrderRepository
	auditor  *MockRecorder
	receipts *MockReceiptStage
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	store := new(MockSessionStore)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	sessions := NewSessionService(store)

	orders := new(MockOrderRepository)
	auditor := new(MockRecorder)
	receipts := new(MockReceiptStage)
	service := NewCheckoutService(sessions, orders, auditor, receipts, zap.NewNop(), "Corner Store")

	return &checkoutFixture{
		service:  service,
		sessions: sessions,
		orders:   orders,
		auditor:  auditor,
		receipts: receipts,
	}
}

func (f *checkoutFixture) startSessionWithItems(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.sessions.Start(ctx, StartSessionRequest{CustomerName: "Alice"})
	require.NoError(t, err)
	_, err = f.sessions.AddItemToActive(ctx, pos.NewCatalogItem("prod-1", "Coffee", decimal.NewFromFloat(4.50), ""))
	require.NoError(t, err)
	_, err = f.sessions.AddItemToActive(ctx, pos.NewCatalogItem("prod-1", "Coffee", decimal.NewFromFloat(4.50), ""))
	require.NoError(t, err)
	_, err = f.sessions.AddItemToActive(ctx, pos.NewTemporaryItem("999", "Snack", decimal.NewFromFloat(1.99)))
	require.NoError(t, err)
}

func TestCheckoutService_CompleteSale(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path persists order, audits, stages receipt and ends session", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.startSessionWithItems(t)

		f.orders.On("GenerateOrderNumber", mock.Anything).Return("POS-2026-00001", nil)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.auditor.On("Record", mock.Anything, mock.Anything).Return(nil)
		f.receipts.On("Put", mock.Anything, mock.AnythingOfType("*printing.ReceiptPayload")).Return(nil)

		response, err := f.service.CompleteSale(ctx)
		require.NoError(t, err)
		assert.Equal(t, "POS-2026-00001", response.OrderNumber)
		assert.Equal(t, "Alice", response.CustomerName)
		assert.Equal(t, "10.99", response.TotalAmount)
		assert.Equal(t, 3, response.ItemCount)
		assert.True(t, response.ReceiptStaged)

		// session is closed after the sale
		assert.False(t, f.sessions.HasActive())

		// staged receipt mirrors the order
		payload := f.receipts.Calls[0].Arguments.Get(1).(*printing.ReceiptPayload)
		assert.Equal(t, "POS-2026-00001", payload.OrderNumber)
		assert.Equal(t, "Corner Store", payload.StoreName)
		require.Len(t, payload.Lines, 2)
	})

	t.Run("no active session aborts", func(t *testing.T) {
		f := newCheckoutFixture(t)
		_, err := f.service.CompleteSale(ctx)
		assert.ErrorIs(t, err, shared.ErrNoActiveSession)
	})

	t.Run("empty cart aborts", func(t *testing.T) {
		f := newCheckoutFixture(t)
		_, err := f.sessions.Start(ctx, StartSessionRequest{CustomerName: "Alice"})
		require.NoError(t, err)
		f.orders.On("GenerateOrderNumber", mock.Anything).Return("POS-2026-00001", nil)

		_, err = f.service.CompleteSale(ctx)
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		assert.True(t, f.sessions.HasActive())
	})

	t.Run("order persistence failure aborts and keeps the session", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.startSessionWithItems(t)

		f.orders.On("GenerateOrderNumber", mock.Anything).Return("POS-2026-00001", nil)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(errors.New("database unreachable"))

		_, err := f.service.CompleteSale(ctx)
		require.Error(t, err)

		// session and cart survive the aborted sale
		active, err := f.sessions.GetActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, active.ItemCount)
		f.auditor.AssertNotCalled(t, "Record")
		f.receipts.AssertNotCalled(t, "Put")
	})

	t.Run("audit failure does not roll back the sale", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.startSessionWithItems(t)

		f.orders.On("GenerateOrderNumber", mock.Anything).Return("POS-2026-00002", nil)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.auditor.On("Record", mock.Anything, mock.Anything).Return(errors.New("audit table locked"))
		f.receipts.On("Put", mock.Anything, mock.Anything).Return(nil)

		response, err := f.service.CompleteSale(ctx)
		require.NoError(t, err)
		assert.True(t, response.ReceiptStaged)
		assert.False(t, f.sessions.HasActive())
	})

	t.Run("receipt staging failure is reported but the sale stands", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.startSessionWithItems(t)

		f.orders.On("GenerateOrderNumber", mock.Anything).Return("POS-2026-00003", nil)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.auditor.On("Record", mock.Anything, mock.Anything).Return(nil)
		f.receipts.On("Put", mock.Anything, mock.Anything).Return(errors.New("stage unavailable"))

		response, err := f.service.CompleteSale(ctx)
		require.NoError(t, err)
		assert.False(t, response.ReceiptStaged)
		assert.False(t, f.sessions.HasActive())
	})

	t.Run("order number generation failure aborts", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.startSessionWithItems(t)

		f.orders.On("GenerateOrderNumber", mock.Anything).Return("", errors.New("sequence unavailable"))

		_, err := f.service.CompleteSale(ctx)
		assert.Error(t, err)
		assert.True(t, f.sessions.HasActive())
	})
}
