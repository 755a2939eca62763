package v1

import (
	"net/http"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	protected.GET("/resumes", handler.ListMine)
}

// ListMine godoc
// @Summary      List My Resumes
// @Description  List the authenticated user's resumes, newest first
// @Tags         resumes
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /resumes [get]
func (h *ResumeHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	resumes, err := h.resumeUC.ListMyResumes(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resumes", gin.H{
		"resumes": resumes,
		"count":   len(resumes),
	})
}
