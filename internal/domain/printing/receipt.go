package printing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptLine is one printed line on a receipt
type ReceiptLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// ReceiptPayload carries everything needed to render a receipt for a
// finalized sale. It is staged at checkout and consumed by the receipt
// endpoints afterwards.
type ReceiptPayload struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerName string          `json:"customerName"`
	Lines        []ReceiptLine   `json:"lines"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	StoreName    string          `json:"storeName"`
	IssuedAt     time.Time       `json:"issuedAt"`
}

// Stage holds staged receipts keyed by order number
type Stage interface {
	// Put stages a receipt, replacing any earlier one for the same order.
	Put(ctx context.Context, payload *ReceiptPayload) error
	// Get returns the staged receipt for an order number, or nil when absent.
	Get(ctx context.Context, orderNumber string) (*ReceiptPayload, error)
	// Latest returns the most recently staged receipt, or nil when none exists.
	Latest(ctx context.Context) (*ReceiptPayload, error)
}

// Renderer turns a staged receipt into a printable document
type Renderer interface {
	RenderHTML(ctx context.Context, payload *ReceiptPayload) ([]byte, error)
	RenderPDF(ctx context.Context, payload *ReceiptPayload) ([]byte, error)
}
