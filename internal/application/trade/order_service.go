package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
)

// OrderService provides read access to finalized orders. Orders are
// written by checkout only; this service never mutates them.
type OrderService struct {
	orders trade.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orders trade.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its order number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with pagination, newest first
func (s *OrderService) List(ctx context.Context, filter shared.Filter) (*OrderListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		filter.OrderDir = "desc"
	}

	page, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderListItemResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToOrderListItemResponse(&page.Items[i]))
	}

	return &OrderListResponse{
		Items:    items,
		Total:    page.Total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
