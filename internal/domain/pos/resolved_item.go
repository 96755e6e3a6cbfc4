package pos

import (
	"github.com/shopspring/decimal"
)

// ResolvedItemKind tags the origin of a resolved scan
type ResolvedItemKind string

const (
	// ResolvedKindCatalog marks an item backed by a catalog product
	ResolvedKindCatalog ResolvedItemKind = "catalog"
	// ResolvedKindTemporary marks an item registered at the register for this trading day
	ResolvedKindTemporary ResolvedItemKind = "temporary"
)

// ResolvedItem is the outcome of a successful barcode resolution.
// ProductID is the catalog product ID for catalog items and the barcode
// itself for temporary items, so repeated scans of either kind aggregate
// onto the same cart line.
type ResolvedItem struct {
	Kind      ResolvedItemKind `json:"kind"`
	ProductID string           `json:"productId"`
	Name      string           `json:"name"`
	UnitPrice decimal.Decimal  `json:"unitPrice"`
	ImageRef  string           `json:"imageRef"`
}

// NewCatalogItem builds a resolved item from catalog product data
func NewCatalogItem(productID, name string, unitPrice decimal.Decimal, imageRef string) ResolvedItem {
	return ResolvedItem{
		Kind:      ResolvedKindCatalog,
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		ImageRef:  imageRef,
	}
}

// NewTemporaryItem builds a resolved item from a temporary product
func NewTemporaryItem(barcode, name string, unitPrice decimal.Decimal) ResolvedItem {
	return ResolvedItem{
		Kind:      ResolvedKindTemporary,
		ProductID: barcode,
		Name:      name,
		UnitPrice: unitPrice,
	}
}

// IsTemporary returns true for items registered at the register
func (r ResolvedItem) IsTemporary() bool {
	return r.Kind == ResolvedKindTemporary
}
