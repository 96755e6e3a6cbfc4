package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// OrderRepository persists finalized orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Order], error)
	Save(ctx context.Context, order *Order) error
	Count(ctx context.Context) (int64, error)
	// GenerateOrderNumber produces the next sequential order number,
	// formatted like POS-2026-00042.
	GenerateOrderNumber(ctx context.Context) (string, error)
}
