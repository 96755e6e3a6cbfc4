package printing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/infrastructure/config"
)

const chromeRenderTimeout = 30 * time.Second

// chromePrinter drives a headless Chrome instance over the DevTools
// protocol. The allocator is created lazily on first use so a terminal
// without Chrome installed still starts up.
type chromePrinter struct {
	cfg    config.PrintingConfig
	logger *zap.Logger

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func newChromePrinter(cfg config.PrintingConfig, logger *zap.Logger) *chromePrinter {
	return &chromePrinter{
		cfg:    cfg,
		logger: logger,
	}
}

func (p *chromePrinter) allocator() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.allocCtx != nil {
		return p.allocCtx
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if p.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(p.cfg.ChromePath))
	}

	p.allocCtx, p.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return p.allocCtx
}

// printToPDF renders a complete HTML document to PDF sized for the
// configured receipt paper.
func (p *chromePrinter) printToPDF(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, chromeRenderTimeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(p.allocator())
	defer browserCancel()

	started := time.Now()
	var pdfData []byte

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(p.cfg.PageWidth).
				WithPaperHeight(p.cfg.PageHeight).
				WithMarginTop(0).
				WithMarginRight(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("PDF rendering timed out after %v: %w", chromeRenderTimeout, err)
		}
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}

	if len(pdfData) == 0 {
		return nil, fmt.Errorf("generated PDF is empty")
	}

	p.logger.Debug("receipt PDF rendered",
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(started)))

	return pdfData, nil
}

func (p *chromePrinter) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.allocCancel != nil {
		p.allocCancel()
		p.allocCancel = nil
		p.allocCtx = nil
	}
	return nil
}
