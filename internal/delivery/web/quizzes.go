package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/brainbuzz/internal/service"
)

func quizID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// ListQuizzes returns active quizzes unless active=false is given.
func (h *Handler) ListQuizzes(c *gin.Context) {
	activeOnly := true
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, errInvalidBody)
			return
		}
		activeOnly = v
	}

	quizzes, err := h.quizzes.ListQuizzes(c.Request.Context(), activeOnly)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

func (h *Handler) GetQuiz(c *gin.Context) {
	id, err := quizID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	quiz, err := h.quizzes.GetQuiz(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

func (h *Handler) GetQuestions(c *gin.Context) {
	id, err := quizID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	questions, err := h.quizzes.GetQuestions(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.quizzes.Categories())
}

func (h *Handler) CreateQuiz(c *gin.Context) {
	var req service.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidBody)
		return
	}

	quiz, err := h.quizzes.CreateQuiz(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

func (h *Handler) UpdateQuiz(c *gin.Context) {
	id, err := quizID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req service.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidBody)
		return
	}

	quiz, err := h.quizzes.UpdateQuiz(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

func (h *Handler) DeleteQuiz(c *gin.Context) {
	id, err := quizID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.quizzes.DeleteQuiz(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
