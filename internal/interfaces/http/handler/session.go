package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	posapp "github.com/retailpos/backend/internal/application/pos"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// SessionHandler handles customer session endpoints
type SessionHandler struct {
	BaseHandler
	sessions *posapp.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *posapp.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// RegisterRoutes registers session routes
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.Start)
		sessions.GET("", h.List)
		sessions.GET("/active", h.GetActive)
		sessions.POST("/:id/activate", h.Activate)
		sessions.DELETE("/:id", h.End)
		sessions.DELETE("/active/items/:productId", h.RemoveItem)
	}
}

// Start godoc
// @Summary      Open a customer session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body posapp.StartSessionRequest true "Session request"
// @Success      201 {object} dto.Response{data=posapp.SessionResponse}
// @Router       /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	var req posapp.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	session, err := h.sessions.Start(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// List godoc
// @Summary      List open sessions
// @Tags         sessions
// @Produce      json
// @Success      200 {object} dto.Response{data=posapp.RegistryResponse}
// @Router       /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	registry, err := h.sessions.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, registry)
}

// GetActive returns the currently active session
func (h *SessionHandler) GetActive(c *gin.Context) {
	session, err := h.sessions.GetActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Activate godoc
// @Summary      Switch the active session
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.Response{data=posapp.SessionResponse}
// @Router       /sessions/{id}/activate [post]
func (h *SessionHandler) Activate(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	if err := h.sessions.SetActive(c.Request.Context(), sessionID); err != nil {
		h.HandleError(c, err)
		return
	}

	session, err := h.sessions.GetActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// End godoc
// @Summary      Close a session
// @Tags         sessions
// @Param        id path string true "Session ID"
// @Success      204
// @Router       /sessions/{id} [delete]
func (h *SessionHandler) End(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	if err := h.sessions.End(c.Request.Context(), sessionID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RemoveItem godoc
// @Summary      Remove a cart line from the active session
// @Description  Removes the whole line regardless of quantity
// @Tags         sessions
// @Produce      json
// @Param        productId path string true "Product ID or temporary barcode"
// @Success      200 {object} dto.Response{data=posapp.SessionResponse}
// @Router       /sessions/active/items/{productId} [delete]
func (h *SessionHandler) RemoveItem(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		h.BadRequest(c, "Product ID is required")
		return
	}

	session, err := h.sessions.RemoveItemFromActive(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}
