package printing

import (
	"context"
	"fmt"

	"github.com/retailpos/backend/internal/domain/printing"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ObjectArchive stores rendered receipt documents off-terminal
type ObjectArchive interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

// ReceiptService serves staged receipts. Receipts are staged by checkout
// and can be fetched as JSON, rendered to HTML or PDF, and archived.
type ReceiptService struct {
	stage    printing.Stage
	renderer printing.Renderer
	archive  ObjectArchive
	logger   *zap.Logger
}

// NewReceiptService creates a new ReceiptService. The archive is
// optional; without one, ArchivePDF returns an error.
func NewReceiptService(stage printing.Stage, renderer printing.Renderer, archive ObjectArchive, logger *zap.Logger) *ReceiptService {
	return &ReceiptService{
		stage:    stage,
		renderer: renderer,
		archive:  archive,
		logger:   logger,
	}
}

// GetLatest returns the most recently staged receipt
func (s *ReceiptService) GetLatest(ctx context.Context) (*printing.ReceiptPayload, error) {
	payload, err := s.stage.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, shared.NewDomainError("NO_RECEIPT", "No receipt has been staged")
	}
	return payload, nil
}

// GetByOrderNumber returns the staged receipt for an order
func (s *ReceiptService) GetByOrderNumber(ctx context.Context, orderNumber string) (*printing.ReceiptPayload, error) {
	payload, err := s.stage.Get(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, shared.NewDomainError("NO_RECEIPT", "No receipt is staged for this order")
	}
	return payload, nil
}

// RenderHTML renders the staged receipt for an order as HTML
func (s *ReceiptService) RenderHTML(ctx context.Context, orderNumber string) ([]byte, error) {
	payload, err := s.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderHTML(ctx, payload)
}

// RenderPDF renders the staged receipt for an order as PDF
func (s *ReceiptService) RenderPDF(ctx context.Context, orderNumber string) ([]byte, error) {
	payload, err := s.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderPDF(ctx, payload)
}

// ArchivePDF renders the receipt for an order and uploads it to the
// configured object archive. Returns the storage URL.
func (s *ReceiptService) ArchivePDF(ctx context.Context, orderNumber string) (string, error) {
	if s.archive == nil {
		return "", shared.NewDomainError("NO_ARCHIVE", "Receipt archiving is not configured")
	}

	data, err := s.RenderPDF(ctx, orderNumber)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("receipts/%s.pdf", orderNumber)
	url, err := s.archive.Upload(ctx, key, "application/pdf", data)
	if err != nil {
		return "", err
	}

	s.logger.Info("receipt archived",
		zap.String("order_number", orderNumber),
		zap.String("key", key))
	return url, nil
}
