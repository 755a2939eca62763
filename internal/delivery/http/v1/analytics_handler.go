package v1

import (
	"net/http"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsUC domain.AnalyticsUsecase
}

func NewAnalyticsHandler(protected *gin.RouterGroup, analyticsUC domain.AnalyticsUsecase) {
	handler := &AnalyticsHandler{analyticsUC: analyticsUC}

	protected.GET("/analytics", handler.GetUserAnalytics)
}

// GetUserAnalytics godoc
// @Summary      User Analytics
// @Description  Aggregate interview and resume statistics for the authenticated user
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /analytics [get]
func (h *AnalyticsHandler) GetUserAnalytics(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	analytics, err := h.analyticsUC.ComputeUserAnalytics(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User analytics", analytics)
}
