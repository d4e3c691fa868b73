package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
)

// Options tune the HTTP layer.
type Options struct {
	DevMode        bool     // expose error details to clients
	CookieSecure   bool     // mark identity cookies Secure
	AllowedOrigins []string // CORS origins allowed to send cookies
}

type Handler struct {
	logger  *zap.Logger
	auth    AuthService
	users   UserService
	quizzes QuizService
	results ResultService

	devMode        bool
	cookieSecure   bool
	allowedOrigins []string
}

func NewHandler(
	logger *zap.Logger,
	auth AuthService,
	users UserService,
	quizzes QuizService,
	results ResultService,
	opts Options,
) *Handler {
	return &Handler{
		logger:         logger,
		auth:           auth,
		users:          users,
		quizzes:        quizzes,
		results:        results,
		devMode:        opts.DevMode,
		cookieSecure:   opts.CookieSecure,
		allowedOrigins: opts.AllowedOrigins,
	}
}

func (h *Handler) client(c *gin.Context) *cookieStorage {
	return newCookieStorage(c, h.cookieSecure)
}

// Router builds the gin engine with every route of the API.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(h.recovery(), h.requestLogger())

	if len(h.allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     h.allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", h.requireAuth(), h.Me)
		}

		api.GET("/categories", h.ListCategories)

		quizzes := api.Group("/quizzes")
		quizzes.Use(h.requireAuth())
		{
			quizzes.GET("", h.ListQuizzes)
			quizzes.GET("/:id", h.GetQuiz)
			quizzes.GET("/:id/questions", h.GetQuestions)
		}

		results := api.Group("/results")
		results.Use(h.requireAuth())
		{
			results.POST("", h.SubmitResult)
			results.GET("/me", h.MyResults)
		}

		admin := api.Group("/admin")
		admin.Use(h.requireAuth(), h.requireRole(entities.RoleAdmin))
		{
			admin.POST("/quizzes", h.CreateQuiz)
			admin.PUT("/quizzes/:id", h.UpdateQuiz)
			admin.DELETE("/quizzes/:id", h.DeleteQuiz)
			admin.GET("/quizzes/:id/statistics", h.QuizStatistics)
			admin.GET("/results", h.AllResults)
			admin.PUT("/users/:username/role", h.AssignRole)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message:   "The requested resource was not found",
			Timestamp: time.Now().UTC(),
		})
	})

	return r
}
