package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
	"github.com/aliskhannn/brainbuzz/internal/service"
)

type LoginRequest struct {
	Login    string `json:"login"` // username or email
	Password string `json:"password"`
}

type UserResponse struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Role      entities.Role `json:"role"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidBody)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidBody)
		return
	}

	res, err := h.auth.Authenticate(c.Request.Context(), h.client(c), req.Login, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), h.client(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}
