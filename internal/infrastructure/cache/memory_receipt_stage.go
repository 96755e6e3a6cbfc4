package cache

import (
	"context"
	"sync"

	"github.com/retailpos/backend/internal/domain/printing"
)

// InMemoryReceiptStage keeps staged receipts in process memory.
// Receipts are transient by nature so losing them on restart is acceptable;
// the order record itself lives in the database.
type InMemoryReceiptStage struct {
	mu      sync.RWMutex
	byOrder map[string]*printing.ReceiptPayload
	latest  string
}

// NewInMemoryReceiptStage creates an empty stage
func NewInMemoryReceiptStage() *InMemoryReceiptStage {
	return &InMemoryReceiptStage{
		byOrder: make(map[string]*printing.ReceiptPayload),
	}
}

// Put stages a receipt, replacing any earlier one for the same order
func (s *InMemoryReceiptStage) Put(ctx context.Context, payload *printing.ReceiptPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *payload
	s.byOrder[payload.OrderNumber] = &copied
	s.latest = payload.OrderNumber
	return nil
}

// Get returns the staged receipt for an order number, or nil when absent
func (s *InMemoryReceiptStage) Get(ctx context.Context, orderNumber string) (*printing.ReceiptPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.byOrder[orderNumber]
	if !ok {
		return nil, nil
	}
	copied := *payload
	return &copied, nil
}

// Latest returns the most recently staged receipt, or nil when none exists
func (s *InMemoryReceiptStage) Latest(ctx context.Context) (*printing.ReceiptPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == "" {
		return nil, nil
	}
	payload, ok := s.byOrder[s.latest]
	if !ok {
		return nil, nil
	}
	copied := *payload
	return &copied, nil
}

// Ensure InMemoryReceiptStage implements Stage
var _ printing.Stage = (*InMemoryReceiptStage)(nil)
