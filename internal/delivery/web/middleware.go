package web

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
	"github.com/aliskhannn/brainbuzz/internal/service"
)

const authContextKey = "auth"

// requestLogger logs one line per request.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		h.logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// recovery turns a panic into a 500 envelope.
func (h *Handler) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("panic recovered", zap.Any("panic", r), zap.Stack("stack"))
				h.respondError(c, fmt.Errorf("panic: %v", r))
			}
		}()
		c.Next()
	}
}

// requireAuth rejects requests without a live session and stores the
// identity for later handlers.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		res := h.auth.CheckAuthentication(c.Request.Context(), h.client(c))
		if !res.Authenticated {
			h.respondError(c, errUnauthenticated)
			return
		}

		c.Set(authContextKey, res)
		c.Next()
	}
}

// requireRole must run after requireAuth.
func (h *Handler) requireRole(role entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c).Role != role {
			h.respondError(c, errForbidden)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) service.AuthResult {
	if v, ok := c.Get(authContextKey); ok {
		if res, ok := v.(service.AuthResult); ok {
			return res
		}
	}
	return service.AuthResult{}
}
