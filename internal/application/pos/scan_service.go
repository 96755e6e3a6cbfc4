package pos

import (
	"context"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/pos"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ScanService resolves submitted barcodes and routes them into the
// active session's cart. Resolution checks the temporary product cache
// first, then the catalog; a barcode neither knows is reported as
// unresolved so the register can collect product details.
type ScanService struct {
	sessions  *SessionService
	products  catalog.ProductRepository
	tempCache pos.TemporaryProductCache
	logger    *zap.Logger
}

// NewScanService creates a new ScanService
func NewScanService(sessions *SessionService, products catalog.ProductRepository, tempCache pos.TemporaryProductCache, logger *zap.Logger) *ScanService {
	return &ScanService{
		sessions:  sessions,
		products:  products,
		tempCache: tempCache,
		logger:    logger,
	}
}

// Resolve looks up a barcode without touching any cart. Catalog lookup
// failures are treated as a miss so a flaky database cannot block the
// unknown-product flow at the register.
func (s *ScanService) Resolve(ctx context.Context, barcode string) (*pos.ResolvedItem, error) {
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode cannot be empty")
	}

	temp, err := s.tempCache.Get(ctx, barcode)
	if err != nil {
		s.logger.Warn("temporary cache lookup failed, falling through to catalog",
			zap.String("barcode", barcode), zap.Error(err))
	} else if temp != nil {
		item := temp.ToResolvedItem()
		return &item, nil
	}

	product, err := s.products.FindByBarcode(ctx, barcode)
	if err != nil {
		s.logger.Warn("catalog lookup failed, treating barcode as unknown",
			zap.String("barcode", barcode), zap.Error(err))
		return nil, nil
	}
	if product == nil || !product.IsActive() {
		return nil, nil
	}

	item := pos.NewCatalogItem(product.ID.String(), product.Name, product.SellingPrice, product.ImageRef)
	return &item, nil
}

// ProcessBarcode resolves a barcode and, when it resolves, adds the item
// to the active session's cart. Requires an active session.
func (s *ScanService) ProcessBarcode(ctx context.Context, barcode string) (*ScanOutcome, error) {
	if !s.sessions.HasActive() {
		return nil, shared.ErrNoActiveSession
	}

	item, err := s.Resolve(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return &ScanOutcome{Barcode: barcode, Unresolved: true}, nil
	}

	session, err := s.sessions.AddItemToActive(ctx, *item)
	if err != nil {
		return nil, err
	}

	dto := ToResolvedItemDTO(*item)
	return &ScanOutcome{
		Barcode: barcode,
		Item:    &dto,
		Session: session,
	}, nil
}

// RegisterTemporaryProduct stores pricing for an unknown barcode and adds
// the new item to the active cart in one step.
func (s *ScanService) RegisterTemporaryProduct(ctx context.Context, req RegisterTemporaryProductRequest) (*ScanOutcome, error) {
	if !s.sessions.HasActive() {
		return nil, shared.ErrNoActiveSession
	}

	product, err := pos.NewTemporaryProduct(req.Barcode, req.Name, decimal.NewFromFloat(req.Price))
	if err != nil {
		return nil, err
	}

	if err := s.tempCache.Put(ctx, product); err != nil {
		return nil, err
	}

	item := product.ToResolvedItem()
	session, err := s.sessions.AddItemToActive(ctx, item)
	if err != nil {
		return nil, err
	}

	dto := ToResolvedItemDTO(item)
	return &ScanOutcome{
		Barcode: product.Barcode,
		Item:    &dto,
		Session: session,
	}, nil
}

// ListTemporaryProducts returns all temporary products registered so far
func (s *ScanService) ListTemporaryProducts(ctx context.Context) ([]TemporaryProductResponse, error) {
	products, err := s.tempCache.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]TemporaryProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, ToTemporaryProductResponse(product))
	}
	return responses, nil
}
