package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/trade"
)

// OrderItemResponse is one order line in API responses
type OrderItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

// OrderResponse is the full API view of a finalized order
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"orderNumber"`
	CustomerName string              `json:"customerName"`
	Items        []OrderItemResponse `json:"items"`
	TotalAmount  string              `json:"totalAmount"`
	ItemCount    int                 `json:"itemCount"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// OrderListItemResponse is the compact listing view of an order
type OrderListItemResponse struct {
	ID           uuid.UUID `json:"id"`
	OrderNumber  string    `json:"orderNumber"`
	CustomerName string    `json:"customerName"`
	TotalAmount  string    `json:"totalAmount"`
	ItemCount    int       `json:"itemCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OrderListResponse is a paginated order listing
type OrderListResponse struct {
	Items    []OrderListItemResponse `json:"items"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"pageSize"`
}

// ToOrderResponse converts a domain order to its full API view
func ToOrderResponse(order *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal.StringFixed(2),
		})
	}
	return OrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		Items:        items,
		TotalAmount:  order.TotalAmount.StringFixed(2),
		ItemCount:    order.ItemCount(),
		CreatedAt:    order.CreatedAt,
	}
}

// ToOrderListItemResponse converts a domain order to its listing view
func ToOrderListItemResponse(order *trade.Order) OrderListItemResponse {
	return OrderListItemResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		TotalAmount:  order.TotalAmount.StringFixed(2),
		ItemCount:    order.ItemCount(),
		CreatedAt:    order.CreatedAt,
	}
}
