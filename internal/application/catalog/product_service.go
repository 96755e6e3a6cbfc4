package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/pos"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ProductService handles catalog product operations. When a product is
// created for a barcode that has a temporary product registered at the
// register, the temporary entry is evicted so the catalog takes over
// resolution for that barcode.
type ProductService struct {
	products  catalog.ProductRepository
	tempCache pos.TemporaryProductCache
	logger    *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, tempCache pos.TemporaryProductCache, logger *zap.Logger) *ProductService {
	return &ProductService{
		products:  products,
		tempCache: tempCache,
		logger:    logger,
	}
}

// Create registers a new catalog product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.products.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A product with this code already exists")
	}

	price := valueobject.NewMoneyUSDFromFloat(req.Price)

	var product *catalog.Product
	if req.Barcode != "" {
		taken, err := s.products.ExistsByBarcode(ctx, req.Barcode)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("DUPLICATE_BARCODE", "A product with this barcode already exists")
		}
		product, err = catalog.NewProductWithBarcode(req.Code, req.Name, req.Barcode, price)
		if err != nil {
			return nil, err
		}
	} else {
		product, err = catalog.NewProduct(req.Code, req.Name, price)
		if err != nil {
			return nil, err
		}
	}

	if req.Description != "" {
		product.SetDescription(req.Description)
	}
	if req.ImageRef != "" {
		product.SetImageRef(req.ImageRef)
	}
	if req.Stock > 0 {
		if err := product.SetStock(req.Stock); err != nil {
			return nil, err
		}
	}
	product.ClearDomainEvents()

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	if product.Barcode != "" {
		if err := s.tempCache.Delete(ctx, product.Barcode); err != nil {
			s.logger.Warn("temporary product eviction failed",
				zap.String("barcode", product.Barcode), zap.Error(err))
		}
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.ErrNotFound
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByBarcode retrieves a product by barcode
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*ProductResponse, error) {
	product, err := s.products.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.ErrNotFound
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*ProductListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}

	return &ProductListResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Update modifies mutable product fields
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.SetDescription(*req.Description)
	}
	if req.Barcode != nil {
		if err := product.SetBarcode(*req.Barcode); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := product.UpdatePrice(valueobject.NewMoneyUSDFromFloat(*req.Price)); err != nil {
			return nil, err
		}
	}
	if req.ImageRef != nil {
		product.SetImageRef(*req.ImageRef)
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Deactivate takes a product off sale
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return shared.ErrNotFound
	}
	product.Deactivate()
	product.ClearDomainEvents()
	return s.products.Save(ctx, product)
}
