package pos

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TemporaryProduct is a product registered at the register when a scanned
// barcode has no catalog entry. It is keyed by its barcode and lives in the
// temporary cache until a catalog product takes over the barcode.
type TemporaryProduct struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewTemporaryProduct creates a temporary product for an unknown barcode
func NewTemporaryProduct(barcode, name string, price decimal.Decimal) (*TemporaryProduct, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &TemporaryProduct{
		Barcode:   barcode,
		Name:      name,
		Price:     price,
		CreatedAt: time.Now(),
	}, nil
}

// ToResolvedItem converts the temporary product into a resolved scan outcome
func (t *TemporaryProduct) ToResolvedItem() ResolvedItem {
	return NewTemporaryItem(t.Barcode, t.Name, t.Price)
}
