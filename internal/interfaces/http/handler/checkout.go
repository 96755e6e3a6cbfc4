package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	posapp "github.com/retailpos/backend/internal/application/pos"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
)

// CheckoutHandler handles sale finalization
type CheckoutHandler struct {
	BaseHandler
	checkout *posapp.CheckoutService
	metrics  *telemetry.RegisterMetrics
}

// NewCheckoutHandler creates a new CheckoutHandler. metrics may be nil.
func NewCheckoutHandler(checkout *posapp.CheckoutService, metrics *telemetry.RegisterMetrics) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, metrics: metrics}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.Checkout)
}

// Checkout godoc
// @Summary      Finalize the active sale
// @Description  Persists the active session's cart as an order, stages the
// @Description  receipt and closes the session. Fails with EMPTY_CART when
// @Description  nothing has been scanned.
// @Tags         checkout
// @Produce      json
// @Success      201 {object} dto.Response{data=posapp.CheckoutResponse}
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	result, err := h.checkout.CompleteSale(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		if amount, err := decimal.NewFromString(result.TotalAmount); err == nil {
			h.metrics.RecordSale(c.Request.Context(), amount)
		}
	}
	h.Created(c, result)
}
