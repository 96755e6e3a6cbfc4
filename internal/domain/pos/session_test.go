package pos

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerSession(t *testing.T) {
	t.Run("valid session", func(t *testing.T) {
		session, err := NewCustomerSession("Alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice", session.CustomerName)
		assert.True(t, session.IsEmpty())
		require.Len(t, session.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeSessionStarted, session.GetDomainEvents()[0].EventType())
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := NewCustomerSession("   ")
		assert.Error(t, err)
	})
}

func TestCustomerSession_AddItem(t *testing.T) {
	coffee := NewCatalogItem("prod-1", "Coffee", decimal.NewFromFloat(4.50), "")
	tea := NewCatalogItem("prod-2", "Tea", decimal.NewFromFloat(2.25), "https://cdn.example.com/tea.png")

	t.Run("first scan appends a line with quantity one", func(t *testing.T) {
		session, _ := NewCustomerSession("Alice")
		session.AddItem(coffee)

		require.Len(t, session.Cart, 1)
		assert.Equal(t, "prod-1", session.Cart[0].ProductID)
		assert.Equal(t, 1, session.Cart[0].Quantity)
		assert.Equal(t, DefaultLineImageRef, session.Cart[0].ImageRef)
	})

	t.Run("repeated scans merge onto the same line", func(t *testing.T) {
		session, _ := NewCustomerSession("Alice")
		session.AddItem(coffee)
		session.AddItem(coffee)
		session.AddItem(coffee)

		require.Len(t, session.Cart, 1)
		assert.Equal(t, 3, session.Cart[0].Quantity)
		assert.Equal(t, 3, session.ItemCount())
	})

	t.Run("distinct products keep insertion order", func(t *testing.T) {
		session, _ := NewCustomerSession("Alice")
		session.AddItem(coffee)
		session.AddItem(tea)
		session.AddItem(coffee)

		require.Len(t, session.Cart, 2)
		assert.Equal(t, "prod-1", session.Cart[0].ProductID)
		assert.Equal(t, "prod-2", session.Cart[1].ProductID)
		assert.Equal(t, 2, session.Cart[0].Quantity)
	})

	t.Run("temporary items merge by barcode", func(t *testing.T) {
		session, _ := NewCustomerSession("Bob")
		item := NewTemporaryItem("8901234567890", "Mystery Snack", decimal.NewFromFloat(1.99))
		session.AddItem(item)
		session.AddItem(item)

		require.Len(t, session.Cart, 1)
		assert.Equal(t, "8901234567890", session.Cart[0].ProductID)
		assert.Equal(t, 2, session.Cart[0].Quantity)
	})
}

func TestCustomerSession_RemoveItem(t *testing.T) {
	coffee := NewCatalogItem("prod-1", "Coffee", decimal.NewFromFloat(4.50), "")
	tea := NewCatalogItem("prod-2", "Tea", decimal.NewFromFloat(2.25), "")

	t.Run("removes the full line regardless of quantity", func(t *testing.T) {
		session, _ := NewCustomerSession("Alice")
		session.AddItem(coffee)
		session.AddItem(coffee)
		session.AddItem(tea)

		require.NoError(t, session.RemoveItem("prod-1"))
		require.Len(t, session.Cart, 1)
		assert.Equal(t, "prod-2", session.Cart[0].ProductID)
	})

	t.Run("unknown product returns an error", func(t *testing.T) {
		session, _ := NewCustomerSession("Alice")
		err := session.RemoveItem("prod-9")
		assert.Error(t, err)
	})
}

func TestCustomerSession_Total(t *testing.T) {
	session, _ := NewCustomerSession("Alice")
	session.AddItem(NewCatalogItem("prod-1", "Coffee", decimal.NewFromFloat(4.50), ""))
	session.AddItem(NewCatalogItem("prod-1", "Coffee", decimal.NewFromFloat(4.50), ""))
	session.AddItem(NewCatalogItem("prod-2", "Tea", decimal.NewFromFloat(2.25), ""))

	assert.Equal(t, "11.25", session.Total().Amount().StringFixed(2))
}

func TestNewTemporaryProduct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tp, err := NewTemporaryProduct("123456", "Snack", decimal.NewFromFloat(0.99))
		require.NoError(t, err)
		assert.Equal(t, "123456", tp.Barcode)

		item := tp.ToResolvedItem()
		assert.Equal(t, ResolvedKindTemporary, item.Kind)
		assert.Equal(t, "123456", item.ProductID)
	})

	t.Run("blank barcode rejected", func(t *testing.T) {
		_, err := NewTemporaryProduct("  ", "Snack", decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := NewTemporaryProduct("123", "Snack", decimal.NewFromFloat(-1))
		assert.Error(t, err)
	})
}
