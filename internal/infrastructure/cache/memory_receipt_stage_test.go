package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backend/internal/domain/printing"
)

func newReceipt(orderNumber string) *printing.ReceiptPayload {
	return &printing.ReceiptPayload{
		ID:           uuid.New(),
		OrderNumber:  orderNumber,
		CustomerName: "Alice",
		Lines: []printing.ReceiptLine{
			{Name: "Coffee", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50"), LineTotal: decimal.RequireFromString("9.00")},
		},
		TotalAmount: decimal.RequireFromString("9.00"),
		StoreName:   "Test Store",
		IssuedAt:    time.Now(),
	}
}

func TestInMemoryReceiptStage(t *testing.T) {
	ctx := context.Background()

	t.Run("empty stage has no latest", func(t *testing.T) {
		s := NewInMemoryReceiptStage()

		payload, err := s.Latest(ctx)
		require.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("get returns nil for unknown order", func(t *testing.T) {
		s := NewInMemoryReceiptStage()

		payload, err := s.Get(ctx, "POS-2026-00001")
		require.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("put then get by order number", func(t *testing.T) {
		s := NewInMemoryReceiptStage()
		require.NoError(t, s.Put(ctx, newReceipt("POS-2026-00001")))

		payload, err := s.Get(ctx, "POS-2026-00001")
		require.NoError(t, err)
		require.NotNil(t, payload)
		assert.Equal(t, "Alice", payload.CustomerName)
	})

	t.Run("latest tracks the most recent put", func(t *testing.T) {
		s := NewInMemoryReceiptStage()
		require.NoError(t, s.Put(ctx, newReceipt("POS-2026-00001")))
		require.NoError(t, s.Put(ctx, newReceipt("POS-2026-00002")))

		payload, err := s.Latest(ctx)
		require.NoError(t, err)
		require.NotNil(t, payload)
		assert.Equal(t, "POS-2026-00002", payload.OrderNumber)
	})
}
