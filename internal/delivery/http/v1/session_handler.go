package v1

import (
	"net/http"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionUC domain.SessionUsecase
}

func NewSessionHandler(protected *gin.RouterGroup, sessionUC domain.SessionUsecase, createLimiter gin.HandlerFunc) {
	handler := &SessionHandler{sessionUC: sessionUC}

	sessions := protected.Group("/sessions")
	{
		sessions.POST("", createLimiter, handler.Create)
		sessions.GET("/completed", handler.ListCompleted)
		sessions.GET("/:id/questions", handler.GetQuestions)
		sessions.POST("/:id/questions/regenerate", handler.RegenerateQuestions)
		sessions.POST("/:id/answers", handler.SubmitAnswer)
		sessions.POST("/:id/finish", handler.Finish)
		sessions.POST("/:id/terminate", handler.Terminate)
		sessions.POST("/:id/reattempt", handler.Reattempt)
		sessions.GET("/:id/result", handler.GetResult)
	}
}

type CreateSessionRequest struct {
	JobRole         string  `json:"job_role" binding:"required,min=2,max=100,job_role"`
	JobDescription  string  `json:"job_description" binding:"required,min=10"`
	ExperienceYears int     `json:"experience_years" binding:"min=0,max=50"`
	ResumeID        *string `json:"resume_id"`
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	AnswerText string `json:"answer_text" binding:"required,min=1"`
}

type TerminateSessionRequest struct {
	Reason       string `json:"reason" binding:"required,min=1,max=500"`
	WarningCount int    `json:"warning_count" binding:"min=0"`
}

// Create godoc
// @Summary      Start Interview Session
// @Description  Create a new interview session from a job description. Question generation runs in the background; poll the questions endpoint.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        session  body      CreateSessionRequest  true  "Session Setup"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatValidationErrors(err)))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	result, err := h.sessionUC.CreateSession(c.Request.Context(), userID, domain.CreateSessionInput{
		JobRole:         req.JobRole,
		JobDescription:  req.JobDescription,
		ExperienceYears: req.ExperienceYears,
		ResumeID:        req.ResumeID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview session created", result)
}

// GetQuestions godoc
// @Summary      Get Session Questions
// @Description  List the generated questions of a session in order. Empty while generation is still running.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id}/questions [get]
func (h *SessionHandler) GetQuestions(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	questions, err := h.sessionUC.GetSessionQuestions(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Session questions", gin.H{
		"questions": questions,
		"count":     len(questions),
	})
}

// RegenerateQuestions godoc
// @Summary      Regenerate Questions
// @Description  Retry question generation for an active session that has no questions yet
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id}/questions/regenerate [post]
func (h *SessionHandler) RegenerateQuestions(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	questions, err := h.sessionUC.RegenerateQuestions(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Questions generated", gin.H{
		"questions": questions,
		"count":     len(questions),
	})
}

// SubmitAnswer godoc
// @Summary      Submit Answer
// @Description  Submit or overwrite the answer to one question. On storage failure the answer is kept in a degraded-mode cache and fallback_mode is true.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id      path      string               true  "Session ID"
// @Param        answer  body      SubmitAnswerRequest  true  "Answer"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /sessions/{id}/answers [post]
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatValidationErrors(err)))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	result, err := h.sessionUC.SubmitAnswer(c.Request.Context(), userID, c.Param("id"), req.QuestionID, req.AnswerText)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Answer submitted", result)
}

// Finish godoc
// @Summary      Finish Session
// @Description  Score all submitted answers, aggregate the session result and mark the session COMPLETED
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id}/finish [post]
func (h *SessionHandler) Finish(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	result, err := h.sessionUC.FinishSession(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview completed", result)
}

// Terminate godoc
// @Summary      Terminate Session
// @Description  Abandon an active session, recording the termination reason and proctoring warning count
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id      path      string                   true  "Session ID"
// @Param        reason  body      TerminateSessionRequest  true  "Termination Details"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /sessions/{id}/terminate [post]
func (h *SessionHandler) Terminate(c *gin.Context) {
	var req TerminateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatValidationErrors(err)))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.sessionUC.TerminateSession(c.Request.Context(), userID, c.Param("id"), req.Reason, req.WarningCount); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Session terminated", nil)
}

// Reattempt godoc
// @Summary      Reattempt Interview
// @Description  Start a fresh session reusing the questions, job description and resume of an earlier session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Original Session ID"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id}/reattempt [post]
func (h *SessionHandler) Reattempt(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	result, err := h.sessionUC.ReattemptSession(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Reattempt session created", result)
}

// GetResult godoc
// @Summary      Get Session Result
// @Description  Full per-question and aggregate result view of a session, including in-flight sessions
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id}/result [get]
func (h *SessionHandler) GetResult(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	result, err := h.sessionUC.GetSessionResult(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Session result", result)
}

// ListCompleted godoc
// @Summary      List Completed Sessions
// @Description  Summaries of the user's completed sessions, newest first
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /sessions/completed [get]
func (h *SessionHandler) ListCompleted(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	sessions, err := h.sessionUC.ListCompletedSessions(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Completed sessions", gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}
