package service

import (
	"context"
	"time"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// RecordFailedLogin must count the failure atomically and report whether
	// the account is locked afterwards.
	RecordFailedLogin(ctx context.Context, userID int64, now time.Time, maxAttempts int, lockout time.Duration) (bool, error)
	ResetLoginState(ctx context.Context, userID int64) error
	UpdateRole(ctx context.Context, username string, role entities.Role) error
}

// SessionStore maps opaque session IDs to usernames. Implementations must be
// safe for concurrent use.
type SessionStore interface {
	Create(ctx context.Context, id, username string) error
	Remove(ctx context.Context, id string) error
	IsLoggedIn(ctx context.Context, id string) (bool, error)
	GetUsername(ctx context.Context, id string) (string, error)
	PurgeExpired(ctx context.Context) (int, error)
}

type QuizRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*entities.Quiz, error)
	GetByID(ctx context.Context, id int64) (*entities.Quiz, error)
	ListQuestions(ctx context.Context, quizID int64) ([]*entities.Question, error)
	ListQuestionsByQuizIDs(ctx context.Context, quizIDs []int64) (map[int64][]*entities.Question, error)
	Create(ctx context.Context, quiz *entities.Quiz, questions []*entities.Question) error
	Update(ctx context.Context, quiz *entities.Quiz, questions []*entities.Question) error
	SoftDelete(ctx context.Context, id int64) error
}

type ResultRepository interface {
	Create(ctx context.Context, result *entities.QuizResult) error
	ListByUsername(ctx context.Context, username string) ([]*entities.QuizResult, error)
	ListAll(ctx context.Context) ([]*entities.QuizResult, error)
	ListByQuiz(ctx context.Context, quizID int64) ([]*entities.QuizResult, error)
}

// ClientStorage is the key/value storage held by the browser. The HTTP layer
// backs it with cookies.
type ClientStorage interface {
	Get(key string) string
	Set(key, value string)
	Remove(key string)
}

// Client storage keys written on login and cleared on logout.
const (
	KeySessionID = "sessionId"
	KeyUsername  = "username"
	KeyUserID    = "userId"
)

// ClientKeys lists every key the authentication flow keeps in client storage.
var ClientKeys = []string{KeySessionID, KeyUsername, KeyUserID}
