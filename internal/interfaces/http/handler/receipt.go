package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	printapp "github.com/retailpos/backend/internal/application/printing"
)

// ReceiptHandler serves staged receipts in their various renditions
type ReceiptHandler struct {
	BaseHandler
	receipts *printapp.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receipts *printapp.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

// RegisterRoutes registers receipt routes
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/receipts")
	{
		receipts.GET("/latest", h.GetLatest)
		receipts.GET("/:orderNumber", h.GetByOrderNumber)
		receipts.GET("/:orderNumber/html", h.RenderHTML)
		receipts.GET("/:orderNumber/pdf", h.RenderPDF)
		receipts.POST("/:orderNumber/archive", h.Archive)
	}
}

// GetLatest godoc
// @Summary      Get the latest receipt
// @Description  Returns the receipt staged by the most recent checkout.
// @Tags         receipts
// @Produce      json
// @Success      200 {object} dto.Response{data=printing.ReceiptPayload}
// @Router       /receipts/latest [get]
func (h *ReceiptHandler) GetLatest(c *gin.Context) {
	payload, err := h.receipts.GetLatest(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payload)
}

// GetByOrderNumber returns the staged receipt for an order
func (h *ReceiptHandler) GetByOrderNumber(c *gin.Context) {
	payload, err := h.receipts.GetByOrderNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payload)
}

// RenderHTML godoc
// @Summary      Render a receipt as HTML
// @Tags         receipts
// @Produce      html
// @Param        orderNumber path string true "Order number"
// @Success      200 {string} string "Receipt HTML"
// @Router       /receipts/{orderNumber}/html [get]
func (h *ReceiptHandler) RenderHTML(c *gin.Context) {
	html, err := h.receipts.RenderHTML(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// RenderPDF godoc
// @Summary      Render a receipt as PDF
// @Tags         receipts
// @Produce      application/pdf
// @Param        orderNumber path string true "Order number"
// @Success      200 {string} binary "Receipt PDF"
// @Router       /receipts/{orderNumber}/pdf [get]
func (h *ReceiptHandler) RenderPDF(c *gin.Context) {
	orderNumber := c.Param("orderNumber")
	pdf, err := h.receipts.RenderPDF(c.Request.Context(), orderNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", orderNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Archive renders the receipt as PDF and uploads it to object storage
func (h *ReceiptHandler) Archive(c *gin.Context) {
	url, err := h.receipts.ArchivePDF(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"url": url})
}
