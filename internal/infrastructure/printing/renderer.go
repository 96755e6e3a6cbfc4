package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/printing"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/config"
)

// ReceiptRenderer renders staged receipts to HTML and, when headless
// Chrome is enabled, to PDF.
type ReceiptRenderer struct {
	tmpl   *template.Template
	chrome *chromePrinter
	logger *zap.Logger
}

// NewReceiptRenderer creates a renderer from printing configuration
func NewReceiptRenderer(cfg config.PrintingConfig, logger *zap.Logger) (*ReceiptRenderer, error) {
	tmpl, err := parseReceiptTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to parse receipt template: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	renderer := &ReceiptRenderer{
		tmpl:   tmpl,
		logger: logger,
	}

	if cfg.ChromeEnabled {
		renderer.chrome = newChromePrinter(cfg, logger)
	}

	return renderer, nil
}

// RenderHTML renders the receipt as a standalone HTML document
func (r *ReceiptRenderer) RenderHTML(ctx context.Context, payload *printing.ReceiptPayload) ([]byte, error) {
	if payload == nil {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt payload is empty")
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, payload); err != nil {
		return nil, fmt.Errorf("failed to render receipt template: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF renders the receipt to PDF through headless Chrome
func (r *ReceiptRenderer) RenderPDF(ctx context.Context, payload *printing.ReceiptPayload) ([]byte, error) {
	if r.chrome == nil {
		return nil, shared.NewDomainError("PDF_DISABLED", "PDF rendering is not enabled on this terminal")
	}

	html, err := r.RenderHTML(ctx, payload)
	if err != nil {
		return nil, err
	}

	return r.chrome.printToPDF(ctx, string(html))
}

// Close releases the Chrome allocator if one was started
func (r *ReceiptRenderer) Close() error {
	if r.chrome == nil {
		return nil
	}
	return r.chrome.close()
}

// Ensure ReceiptRenderer implements Renderer
var _ printing.Renderer = (*ReceiptRenderer)(nil)
