package web

import (
	"context"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
	"github.com/aliskhannn/brainbuzz/internal/service"
)

type AuthService interface {
	Authenticate(ctx context.Context, client service.ClientStorage, login, password string) (*service.AuthResult, error)
	Register(ctx context.Context, req service.RegisterRequest) (*entities.User, error)
	CheckAuthentication(ctx context.Context, client service.ClientStorage) service.AuthResult
	Logout(ctx context.Context, client service.ClientStorage) error
}

type UserService interface {
	AssignRole(ctx context.Context, username string, role entities.Role) error
}

type QuizService interface {
	ListQuizzes(ctx context.Context, activeOnly bool) ([]service.QuizView, error)
	GetQuiz(ctx context.Context, id int64) (*service.QuizView, error)
	GetQuestions(ctx context.Context, quizID int64) ([]service.QuestionView, error)
	CreateQuiz(ctx context.Context, req service.QuizRequest) (*service.QuizView, error)
	UpdateQuiz(ctx context.Context, id int64, req service.QuizRequest) (*service.QuizView, error)
	DeleteQuiz(ctx context.Context, id int64) error
	Categories() []string
}

type ResultService interface {
	SubmitResult(ctx context.Context, result *entities.QuizResult) (*service.ResultView, error)
	GetUserResults(ctx context.Context, username string) ([]service.ResultView, error)
	GetAllResults(ctx context.Context) ([]service.ResultView, error)
	GetQuizStatistics(ctx context.Context, quizID int64) (*entities.QuizStatistics, error)
}
