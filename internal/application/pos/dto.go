package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/pos"
)

// StartSessionRequest opens a new customer session
type StartSessionRequest struct {
	CustomerName string `json:"customerName" binding:"required"`
}

// CartLineResponse is one cart line in API responses
type CartLineResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
	ImageRef  string `json:"imageRef"`
}

// SessionResponse is the API view of a customer session
type SessionResponse struct {
	ID           uuid.UUID          `json:"id"`
	CustomerName string             `json:"customerName"`
	Active       bool               `json:"active"`
	Cart         []CartLineResponse `json:"cart"`
	ItemCount    int                `json:"itemCount"`
	Total        string             `json:"total"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// RegistryResponse lists all open sessions
type RegistryResponse struct {
	Sessions        []SessionResponse `json:"sessions"`
	ActiveSessionID *uuid.UUID        `json:"activeSessionId,omitempty"`
}

// ScanRequest submits a barcode for resolution
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required,barcode"`
}

// ScanOutcome reports what happened to a submitted barcode. When the
// barcode could not be resolved, Unresolved is true and the register UI
// is expected to prompt for product details.
type ScanOutcome struct {
	Barcode    string           `json:"barcode"`
	Unresolved bool             `json:"unresolved"`
	Item       *ResolvedItemDTO `json:"item,omitempty"`
	Session    *SessionResponse `json:"session,omitempty"`
}

// ResolvedItemDTO is the API view of a resolved scan
type ResolvedItemDTO struct {
	Kind      string `json:"kind"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	ImageRef  string `json:"imageRef,omitempty"`
}

// RegisterTemporaryProductRequest registers pricing for an unknown barcode
type RegisterTemporaryProductRequest struct {
	Barcode string  `json:"barcode" binding:"required,barcode"`
	Name    string  `json:"name" binding:"required"`
	Price   float64 `json:"price" binding:"min=0"`
}

// TemporaryProductResponse is the API view of a temporary product
type TemporaryProductResponse struct {
	Barcode   string    `json:"barcode"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// CheckoutResponse reports a finalized sale
type CheckoutResponse struct {
	OrderID       uuid.UUID `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	CustomerName  string    `json:"customerName"`
	TotalAmount   string    `json:"totalAmount"`
	ItemCount     int       `json:"itemCount"`
	ReceiptStaged bool      `json:"receiptStaged"`
}

// ToCartLineResponse converts a domain cart line to its API view
func ToCartLineResponse(line pos.CartLine) CartLineResponse {
	return CartLineResponse{
		ProductID: line.ProductID,
		Name:      line.Name,
		UnitPrice: line.UnitPrice.StringFixed(2),
		Quantity:  line.Quantity,
		LineTotal: line.LineTotal().StringFixed(2),
		ImageRef:  line.ImageRef,
	}
}

// ToSessionResponse converts a domain session to its API view
func ToSessionResponse(session *pos.CustomerSession, active bool) SessionResponse {
	cart := make([]CartLineResponse, 0, len(session.Cart))
	for _, line := range session.Cart {
		cart = append(cart, ToCartLineResponse(line))
	}
	return SessionResponse{
		ID:           session.ID,
		CustomerName: session.CustomerName,
		Active:       active,
		Cart:         cart,
		ItemCount:    session.ItemCount(),
		Total:        session.Total().StringFixed(2),
		CreatedAt:    session.CreatedAt,
	}
}

// ToResolvedItemDTO converts a resolved item to its API view
func ToResolvedItemDTO(item pos.ResolvedItem) ResolvedItemDTO {
	return ResolvedItemDTO{
		Kind:      string(item.Kind),
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice.StringFixed(2),
		ImageRef:  item.ImageRef,
	}
}

// ToTemporaryProductResponse converts a temporary product to its API view
func ToTemporaryProductResponse(product *pos.TemporaryProduct) TemporaryProductResponse {
	return TemporaryProductResponse{
		Barcode:   product.Barcode,
		Name:      product.Name,
		Price:     product.Price.StringFixed(2),
		CreatedAt: product.CreatedAt,
	}
}
