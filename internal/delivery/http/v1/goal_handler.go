package v1

import (
	"net/http"
	"time"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalUC domain.GoalUsecase
}

func NewGoalHandler(protected *gin.RouterGroup, goalUC domain.GoalUsecase) {
	handler := &GoalHandler{goalUC: goalUC}

	goals := protected.Group("/goals")
	{
		goals.POST("", handler.Create)
		goals.GET("", handler.List)
		goals.PATCH("/:id", handler.Update)
		goals.DELETE("/:id", handler.Delete)
	}
}

type CreateGoalRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	Category    string    `json:"category" binding:"required,goal_category"`
	TargetDate  time.Time `json:"target_date" binding:"required"`
}

type UpdateGoalRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Category    *string    `json:"category" binding:"omitempty,goal_category"`
	TargetDate  *time.Time `json:"target_date"`
	Completed   *bool      `json:"completed"`
	Progress    *int       `json:"progress" binding:"omitempty,min=0,max=100"`
}

// Create godoc
// @Summary      Create Goal
// @Description  Create a personal preparation goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        goal  body      CreateGoalRequest  true  "Goal"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatValidationErrors(err)))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	goal, err := h.goalUC.CreateGoal(c.Request.Context(), userID, req.Title, req.Description, req.Category, req.TargetDate)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Goal created", goal)
}

// List godoc
// @Summary      List Goals
// @Description  List the user's goals, newest first
// @Tags         goals
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	goals, err := h.goalUC.ListGoals(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Goals", gin.H{
		"goals": goals,
		"count": len(goals),
	})
}

// Update godoc
// @Summary      Update Goal
// @Description  Partially update a goal. Progress of 100 marks it completed; marking completed forces progress to 100.
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Goal ID"
// @Param        goal  body      UpdateGoalRequest  true  "Fields to update"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /goals/{id} [patch]
func (h *GoalHandler) Update(c *gin.Context) {
	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatValidationErrors(err)))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	goal, err := h.goalUC.UpdateGoal(c.Request.Context(), userID, c.Param("id"), domain.GoalUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TargetDate:  req.TargetDate,
		Completed:   req.Completed,
		Progress:    req.Progress,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Goal updated", goal)
}

// Delete godoc
// @Summary      Delete Goal
// @Tags         goals
// @Produce      json
// @Param        id   path      string  true  "Goal ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if err := h.goalUC.DeleteGoal(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Goal deleted", nil)
}
