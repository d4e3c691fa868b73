package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
	"github.com/aliskhannn/brainbuzz/internal/infra/postgres/repository"
)

// memClient is a ClientStorage backed by a map.
type memClient map[string]string

func (c memClient) Get(key string) string { return c[key] }
func (c memClient) Set(key, value string) { c[key] = value }
func (c memClient) Remove(key string) { delete(c, key) }

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	users  []*entities.User
}

func (f *fakeUsers) Create(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Username, user.Username) {
			return repository.ErrDuplicateUsername
		}
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}

	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users = append(f.users, &stored)
	return nil
}

func (f *fakeUsers) find(match func(*entities.User) bool) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*entities.User, error) {
	return f.find(func(u *entities.User) bool { return strings.EqualFold(u.Username, username) })
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	return f.find(func(u *entities.User) bool { return strings.EqualFold(u.Email, email) })
}

func (f *fakeUsers) RecordFailedLogin(
	_ context.Context, userID int64, now time.Time, maxAttempts int, lockout time.Duration,
) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ID == userID {
			if !u.IsLockedOut(now) {
				u.RegisterFailedLogin(now, maxAttempts, lockout)
			}
			return u.IsLockedOut(now), nil
		}
	}
	return false, repository.ErrUserNotFound
}

func (f *fakeUsers) ResetLoginState(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ID == userID {
			u.ResetFailedLogins()
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUsers) UpdateRole(_ context.Context, username string, role entities.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Username, username) {
			u.Role = role
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

type fakeQuizzes struct {
	nextQuizID     int64
	nextQuestionID int64
	quizzes        map[int64]*entities.Quiz
	questions      map[int64][]*entities.Question
}

func newFakeQuizzes() *fakeQuizzes {
	return &fakeQuizzes{
		quizzes:   make(map[int64]*entities.Quiz),
		questions: make(map[int64][]*entities.Question),
	}
}

func (f *fakeQuizzes) List(_ context.Context, activeOnly bool) ([]*entities.Quiz, error) {
	var out []*entities.Quiz
	for _, q := range f.quizzes {
		if q.IsDeleted || (activeOnly && !q.IsActive) {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeQuizzes) GetByID(_ context.Context, id int64) (*entities.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok || q.IsDeleted {
		return nil, repository.ErrQuizNotFound
	}
	return q, nil
}

func (f *fakeQuizzes) ListQuestions(_ context.Context, quizID int64) ([]*entities.Question, error) {
	var out []*entities.Question
	for _, q := range f.questions[quizID] {
		if !q.IsDeleted {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuizzes) ListQuestionsByQuizIDs(ctx context.Context, quizIDs []int64) (map[int64][]*entities.Question, error) {
	out := make(map[int64][]*entities.Question, len(quizIDs))
	for _, id := range quizIDs {
		qs, _ := f.ListQuestions(ctx, id)
		out[id] = qs
	}
	return out, nil
}

func (f *fakeQuizzes) storeQuestions(quizID int64, questions []*entities.Question) {
	for _, q := range questions {
		f.nextQuestionID++
		q.ID = f.nextQuestionID
		q.QuizID = quizID
	}
	f.questions[quizID] = questions
}

func (f *fakeQuizzes) Create(_ context.Context, quiz *entities.Quiz, questions []*entities.Question) error {
	f.nextQuizID++
	quiz.ID = f.nextQuizID
	stored := *quiz
	f.quizzes[quiz.ID] = &stored
	f.storeQuestions(quiz.ID, questions)
	return nil
}

func (f *fakeQuizzes) Update(_ context.Context, quiz *entities.Quiz, questions []*entities.Question) error {
	existing, ok := f.quizzes[quiz.ID]
	if !ok || existing.IsDeleted {
		return repository.ErrQuizNotFound
	}
	quiz.CreatedAt = existing.CreatedAt
	stored := *quiz
	f.quizzes[quiz.ID] = &stored
	f.storeQuestions(quiz.ID, questions)
	return nil
}

func (f *fakeQuizzes) SoftDelete(_ context.Context, id int64) error {
	q, ok := f.quizzes[id]
	if !ok || q.IsDeleted {
		return repository.ErrQuizNotFound
	}
	q.IsDeleted = true
	for _, question := range f.questions[id] {
		question.IsDeleted = true
	}
	return nil
}

// fakeResults joins quiz names from a fakeQuizzes the way the SQL does.
type fakeResults struct {
	quizzes *fakeQuizzes
	nextID  int64
	results []*entities.QuizResult
}

func (f *fakeResults) withName(r *entities.QuizResult) *entities.QuizResult {
	cp := *r
	if q, ok := f.quizzes.quizzes[r.QuizID]; ok {
		cp.QuizName = q.Name
	}
	return &cp
}

func (f *fakeResults) Create(_ context.Context, result *entities.QuizResult) error {
	q, ok := f.quizzes.quizzes[result.QuizID]
	if !ok {
		return repository.ErrQuizNotFound
	}
	f.nextID++
	result.ID = f.nextID
	result.QuizName = q.Name
	stored := *result
	f.results = append(f.results, &stored)
	return nil
}

func (f *fakeResults) filter(match func(*entities.QuizResult) bool) []*entities.QuizResult {
	var out []*entities.QuizResult
	for i := len(f.results) - 1; i >= 0; i-- {
		if match(f.results[i]) {
			out = append(out, f.withName(f.results[i]))
		}
	}
	return out
}

func (f *fakeResults) ListByUsername(_ context.Context, username string) ([]*entities.QuizResult, error) {
	return f.filter(func(r *entities.QuizResult) bool { return r.Username == username }), nil
}

func (f *fakeResults) ListAll(_ context.Context) ([]*entities.QuizResult, error) {
	return f.filter(func(*entities.QuizResult) bool { return true }), nil
}

func (f *fakeResults) ListByQuiz(_ context.Context, quizID int64) ([]*entities.QuizResult, error) {
	return f.filter(func(r *entities.QuizResult) bool { return r.QuizID == quizID }), nil
}
