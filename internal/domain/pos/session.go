package pos

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CartLine is a single line in a session cart. Lines keep insertion order
// and aggregate repeated scans of the same product by quantity.
type CartLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageRef  string          `json:"imageRef"`
}

// LineTotal returns unit price times quantity
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CustomerSession represents one customer being served at the register.
// Several sessions may be open at once; exactly one is active at a time.
type CustomerSession struct {
	shared.BaseAggregateRoot
	CustomerName string     `json:"customerName"`
	Cart         []CartLine `json:"cart"`
}

// NewCustomerSession opens a session for a named customer
func NewCustomerSession(customerName string) (*CustomerSession, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(customerName) > 100 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 100 characters")
	}

	session := &CustomerSession{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		Cart:              make([]CartLine, 0),
	}

	session.AddDomainEvent(NewSessionStartedEvent(session))

	return session, nil
}

// AddItem adds a resolved item to the cart. A second scan of the same
// product increments the existing line instead of appending a new one.
func (s *CustomerSession) AddItem(item ResolvedItem) {
	for i := range s.Cart {
		if s.Cart[i].ProductID == item.ProductID {
			s.Cart[i].Quantity++
			s.touch()
			s.AddDomainEvent(NewCartLineAddedEvent(s, item.ProductID, s.Cart[i].Quantity))
			return
		}
	}

	imageRef := item.ImageRef
	if imageRef == "" {
		imageRef = DefaultLineImageRef
	}
	s.Cart = append(s.Cart, CartLine{
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  1,
		ImageRef:  imageRef,
	})
	s.touch()
	s.AddDomainEvent(NewCartLineAddedEvent(s, item.ProductID, 1))
}

// RemoveItem removes the whole line for a product, regardless of quantity
func (s *CustomerSession) RemoveItem(productID string) error {
	for i := range s.Cart {
		if s.Cart[i].ProductID == productID {
			s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
			s.touch()
			s.AddDomainEvent(NewCartLineRemovedEvent(s, productID))
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "No cart line exists for this product")
}

// Total returns the sum of all line totals
func (s *CustomerSession) Total() valueobject.Money {
	total := decimal.Zero
	for _, line := range s.Cart {
		total = total.Add(line.LineTotal())
	}
	return valueobject.NewMoneyUSD(total)
}

// ItemCount returns the total unit count across all lines
func (s *CustomerSession) ItemCount() int {
	count := 0
	for _, line := range s.Cart {
		count += line.Quantity
	}
	return count
}

// IsEmpty returns true when the cart has no lines
func (s *CustomerSession) IsEmpty() bool {
	return len(s.Cart) == 0
}

// FindLine returns the line for a product, or nil when absent
func (s *CustomerSession) FindLine(productID string) *CartLine {
	for i := range s.Cart {
		if s.Cart[i].ProductID == productID {
			return &s.Cart[i]
		}
	}
	return nil
}

func (s *CustomerSession) touch() {
	s.UpdatedAt = time.Now()
}

// DefaultLineImageRef is used for cart lines whose product has no image
const DefaultLineImageRef = "https://placehold.co/100x100.png"
