package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	posapp "github.com/retailpos/backend/internal/application/pos"
	"github.com/retailpos/backend/internal/infrastructure/scanner"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// ScanHandler handles barcode submission and scanner hardware control
type ScanHandler struct {
	BaseHandler
	scans   *posapp.ScanService
	router  *scanner.Router
	metrics *telemetry.RegisterMetrics
}

// NewScanHandler creates a new ScanHandler. metrics may be nil.
func NewScanHandler(scans *posapp.ScanService, router *scanner.Router, metrics *telemetry.RegisterMetrics) *ScanHandler {
	return &ScanHandler{scans: scans, router: router, metrics: metrics}
}

// RegisterRoutes registers scan and scanner routes
func (h *ScanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/scan", h.Scan)

	scannerGroup := rg.Group("/scanner")
	{
		scannerGroup.POST("/keys", h.Keys)
		scannerGroup.GET("/status", h.Status)
		scannerGroup.POST("/wedge/pause", h.PauseWedge)
		scannerGroup.POST("/wedge/resume", h.ResumeWedge)
		scannerGroup.POST("/camera/start", h.StartCamera)
		scannerGroup.POST("/camera/stop", h.StopCamera)
	}

	temp := rg.Group("/temporary-products")
	{
		temp.POST("", h.RegisterTemporaryProduct)
		temp.GET("", h.ListTemporaryProducts)
	}
}

// Scan godoc
// @Summary      Submit a barcode
// @Description  Resolves a barcode and adds it to the active session's cart.
// @Description  Unknown barcodes come back with unresolved=true.
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        request body posapp.ScanRequest true "Scan request"
// @Success      200 {object} dto.Response{data=posapp.ScanOutcome}
// @Router       /scan [post]
func (h *ScanHandler) Scan(c *gin.Context) {
	var req posapp.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	outcome, err := h.scans.ProcessBarcode(c.Request.Context(), req.Barcode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.recordScan(c, outcome)
	h.Success(c, outcome)
}

func (h *ScanHandler) recordScan(c *gin.Context, outcome *posapp.ScanOutcome) {
	if h.metrics == nil {
		return
	}
	label := telemetry.ScanOutcomeUnresolved
	if !outcome.Unresolved && outcome.Item != nil {
		label = telemetry.ScanOutcomeCatalog
		if outcome.Item.Kind == "temporary" {
			label = telemetry.ScanOutcomeTemporary
		}
	}
	h.metrics.RecordScan(c.Request.Context(), scanner.SourceManual, label)
}

// KeysRequest feeds raw keystrokes from the register keyboard
type KeysRequest struct {
	Keys string `json:"keys" binding:"required"`
}

// Keys godoc
// @Summary      Feed scanner keystrokes
// @Description  Feeds raw keyboard input into the wedge decoder. Complete
// @Description  scans are detected by Enter or a short idle gap and flow
// @Description  through the same pipeline as /scan.
// @Tags         scanner
// @Accept       json
// @Success      204
// @Router       /scanner/keys [post]
func (h *ScanHandler) Keys(c *gin.Context) {
	var req KeysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	h.router.Wedge().Input(req.Keys)
	h.NoContent(c)
}

// Status returns the scanner input status
func (h *ScanHandler) Status(c *gin.Context) {
	h.Success(c, h.router.Status())
}

// PauseWedge suspends wedge input, e.g. while a dialog owns the keyboard
func (h *ScanHandler) PauseWedge(c *gin.Context) {
	h.router.PauseWedge()
	h.NoContent(c)
}

// ResumeWedge re-enables wedge input
func (h *ScanHandler) ResumeWedge(c *gin.Context) {
	h.router.ResumeWedge()
	h.NoContent(c)
}

// StartCamera starts the camera decode loop
func (h *ScanHandler) StartCamera(c *gin.Context) {
	if err := h.router.StartCamera(c.Request.Context()); err != nil {
		if errors.Is(err, scanner.ErrNoCamera) {
			h.Error(c, http.StatusUnprocessableEntity, "NO_CAMERA", "No camera is attached to this terminal")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// StopCamera stops the camera decode loop
func (h *ScanHandler) StopCamera(c *gin.Context) {
	h.router.StopCamera()
	h.NoContent(c)
}

// RegisterTemporaryProduct godoc
// @Summary      Register a temporary product
// @Description  Prices an unknown barcode for the rest of the trading day
// @Description  and adds it to the active session's cart.
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        request body posapp.RegisterTemporaryProductRequest true "Temporary product"
// @Success      201 {object} dto.Response{data=posapp.ScanOutcome}
// @Router       /temporary-products [post]
func (h *ScanHandler) RegisterTemporaryProduct(c *gin.Context) {
	var req posapp.RegisterTemporaryProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	outcome, err := h.scans.RegisterTemporaryProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, outcome)
}

// ListTemporaryProducts lists products registered at the register
func (h *ScanHandler) ListTemporaryProducts(c *gin.Context) {
	products, err := h.scans.ListTemporaryProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}
