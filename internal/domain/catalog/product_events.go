package catalog

import (
	"github.com/retailpos/backend/internal/domain/shared"
)

// Event types for the catalog domain
const (
	EventTypeProductCreated     = "catalog.product.created"
	EventTypeProductDeactivated = "catalog.product.deactivated"
)

// ProductCreatedEvent is raised when a new product is added to the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Code    string `json:"code"`
	Name    string `json:"name"`
	Barcode string `json:"barcode,omitempty"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID),
		Code:            p.Code,
		Name:            p.Name,
		Barcode:         p.Barcode,
	}
}

// ProductDeactivatedEvent is raised when a product is taken off sale
type ProductDeactivatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewProductDeactivatedEvent creates a new ProductDeactivatedEvent
func NewProductDeactivatedEvent(p *Product) *ProductDeactivatedEvent {
	return &ProductDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeactivated, "Product", p.ID),
		Code:            p.Code,
	}
}
