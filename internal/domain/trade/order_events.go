package trade

import (
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EventTypeOrderPlaced is raised when a sale is finalized
const EventTypeOrderPlaced = "trade.order.placed"

// OrderPlacedEvent carries the details of a finalized sale
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ItemCount    int             `json:"item_count"`
}

// NewOrderPlacedEvent creates an order placed event
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, "Order", order.ID),
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		TotalAmount:     order.TotalAmount,
		ItemCount:       order.ItemCount(),
	}
}
