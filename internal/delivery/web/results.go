package web

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
)

// SubmitResultRequest is a completed attempt. The username is taken from
// the session, never from the body.
type SubmitResultRequest struct {
	QuizID         int64           `json:"quizId" binding:"required"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	Percentage     float64         `json:"percentage"`
	TimeSpent      int             `json:"timeSpent"` // seconds
	UserAnswers    json.RawMessage `json:"userAnswers"`
}

type RoleRequest struct {
	Role entities.Role `json:"role" binding:"required"`
}

func (h *Handler) SubmitResult(c *gin.Context) {
	var req SubmitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidBody)
		return
	}

	answers := "{}"
	if len(req.UserAnswers) > 0 {
		answers = string(req.UserAnswers)
	}

	view, err := h.results.SubmitResult(c.Request.Context(), &entities.QuizResult{
		QuizID:         req.QuizID,
		Username:       currentUser(c).Username,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Percentage:     req.Percentage,
		TimeSpent:      req.TimeSpent,
		UserAnswers:    answers,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *Handler) MyResults(c *gin.Context) {
	results, err := h.results.GetUserResults(c.Request.Context(), currentUser(c).Username)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) AllResults(c *gin.Context) {
	results, err := h.results.GetAllResults(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) QuizStatistics(c *gin.Context) {
	id, err := quizID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	stats, err := h.results.GetQuizStatistics(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) AssignRole(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidBody)
		return
	}

	username := c.Param("username")
	if err := h.users.AssignRole(c.Request.Context(), username, req.Role); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "role updated"})
}
