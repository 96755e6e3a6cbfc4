package pos

import (
	"github.com/retailpos/backend/internal/domain/shared"
)

// Session event types
const (
	EventTypeSessionStarted  = "pos.session.started"
	EventTypeSessionEnded    = "pos.session.ended"
	EventTypeCartLineAdded   = "pos.cart.line_added"
	EventTypeCartLineRemoved = "pos.cart.line_removed"
)

// SessionStartedEvent is raised when a customer session is opened
type SessionStartedEvent struct {
	shared.BaseDomainEvent
	CustomerName string `json:"customer_name"`
}

// NewSessionStartedEvent creates a session started event
func NewSessionStartedEvent(session *CustomerSession) *SessionStartedEvent {
	return &SessionStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionStarted, "CustomerSession", session.ID),
		CustomerName:    session.CustomerName,
	}
}

// SessionEndedEvent is raised when a customer session is closed
type SessionEndedEvent struct {
	shared.BaseDomainEvent
	CustomerName string `json:"customer_name"`
	ItemCount    int    `json:"item_count"`
}

// NewSessionEndedEvent creates a session ended event
func NewSessionEndedEvent(session *CustomerSession) *SessionEndedEvent {
	return &SessionEndedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionEnded, "CustomerSession", session.ID),
		CustomerName:    session.CustomerName,
		ItemCount:       session.ItemCount(),
	}
}

// CartLineAddedEvent is raised when a scan lands in the cart
type CartLineAddedEvent struct {
	shared.BaseDomainEvent
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// NewCartLineAddedEvent creates a cart line added event
func NewCartLineAddedEvent(session *CustomerSession, productID string, quantity int) *CartLineAddedEvent {
	return &CartLineAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartLineAdded, "CustomerSession", session.ID),
		ProductID:       productID,
		Quantity:        quantity,
	}
}

// CartLineRemovedEvent is raised when a line is taken off the cart
type CartLineRemovedEvent struct {
	shared.BaseDomainEvent
	ProductID string `json:"product_id"`
}

// NewCartLineRemovedEvent creates a cart line removed event
func NewCartLineRemovedEvent(session *CustomerSession, productID string) *CartLineRemovedEvent {
	return &CartLineRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartLineRemoved, "CustomerSession", session.ID),
		ProductID:       productID,
	}
}
