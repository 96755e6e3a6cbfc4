package handler

import (
	"github.com/gin-gonic/gin"

	auditapp "github.com/retailpos/backend/internal/application/audit"
)

// ActivityHandler provides read access to the register activity log
type ActivityHandler struct {
	BaseHandler
	activities *auditapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activities *auditapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// RegisterRoutes registers activity routes
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activities", h.List)
}

// List godoc
// @Summary      List register activity
// @Description  Returns activity entries newest first, paginated.
// @Tags         activities
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Success      200 {object} dto.Response{data=[]auditapp.ActivityEntryResponse}
// @Router       /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	req, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.activities.List(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
