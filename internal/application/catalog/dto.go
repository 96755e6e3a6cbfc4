package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
)

// CreateProductRequest registers a new catalog product. Barcode is
// optional for back-office creation and required when promoting a
// temporary product registered at the register.
type CreateProductRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Barcode     string  `json:"barcode"`
	Price       float64 `json:"price" binding:"min=0"`
	ImageRef    string  `json:"imageRef"`
	Stock       int     `json:"stock" binding:"min=0"`
}

// UpdateProductRequest updates mutable product fields
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Barcode     *string  `json:"barcode"`
	Price       *float64 `json:"price"`
	ImageRef    *string  `json:"imageRef"`
	Stock       *int     `json:"stock"`
}

// ProductResponse is the API view of a catalog product
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Barcode     string    `json:"barcode,omitempty"`
	Price       string    `json:"price"`
	ImageRef    string    `json:"imageRef"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductListResponse is a paginated product listing
type ProductListResponse struct {
	Items    []ProductResponse `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// ToProductResponse converts a domain product to its API view
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Code:        product.Code,
		Name:        product.Name,
		Description: product.Description,
		Barcode:     product.Barcode,
		Price:       product.SellingPrice.StringFixed(2),
		ImageRef:    product.ImageRef,
		Stock:       product.Stock,
		Status:      string(product.Status),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
