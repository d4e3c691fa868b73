package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
	"github.com/aliskhannn/brainbuzz/internal/infra/postgres/repository"
)

var ErrQuizNotFound = errors.New("quiz not found")

// QuizService manages the quiz catalog.
type QuizService struct {
	quizzes QuizRepository
	logger  *zap.Logger
}

func NewQuizService(quizzes QuizRepository, logger *zap.Logger) *QuizService {
	return &QuizService{quizzes: quizzes, logger: logger}
}

// ListQuizzes returns non-deleted quizzes ordered by name, each with its
// questions. With activeOnly set inactive quizzes are skipped.
func (s *QuizService) ListQuizzes(ctx context.Context, activeOnly bool) ([]QuizView, error) {
	quizzes, err := s.quizzes.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("failed to list quizzes", zap.Error(err))
		return nil, err
	}

	ids := make([]int64, 0, len(quizzes))
	for _, q := range quizzes {
		ids = append(ids, q.ID)
	}

	questions, err := s.quizzes.ListQuestionsByQuizIDs(ctx, ids)
	if err != nil {
		s.logger.Error("failed to load quiz questions", zap.Error(err))
		return nil, err
	}

	views := make([]QuizView, 0, len(quizzes))
	for _, q := range quizzes {
		views = append(views, newQuizView(q, questions[q.ID]))
	}

	return views, nil
}

// GetQuiz returns a non-deleted quiz with its questions.
func (s *QuizService) GetQuiz(ctx context.Context, id int64) (*QuizView, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			return nil, ErrQuizNotFound
		}
		s.logger.Error("failed to get quiz", zap.Int64("quiz_id", id), zap.Error(err))
		return nil, err
	}

	questions, err := s.quizzes.ListQuestions(ctx, id)
	if err != nil {
		s.logger.Error("failed to load quiz questions", zap.Int64("quiz_id", id), zap.Error(err))
		return nil, err
	}

	view := newQuizView(quiz, questions)
	return &view, nil
}

// GetQuestions returns the non-deleted questions of a quiz in stored order.
func (s *QuizService) GetQuestions(ctx context.Context, quizID int64) ([]QuestionView, error) {
	questions, err := s.quizzes.ListQuestions(ctx, quizID)
	if err != nil {
		s.logger.Error("failed to load quiz questions", zap.Int64("quiz_id", quizID), zap.Error(err))
		return nil, err
	}
	return newQuestionViews(questions), nil
}

// CreateQuiz validates and stores a new quiz with its questions.
func (s *QuizService) CreateQuiz(ctx context.Context, req QuizRequest) (*QuizView, error) {
	if err := ValidateQuiz(req); err != nil {
		return nil, err
	}

	quiz, questions := buildQuiz(req)
	s.warnUnlistedCategory(quiz)

	if err := s.quizzes.Create(ctx, quiz, questions); err != nil {
		s.logger.Error("failed to create quiz", zap.String("title", quiz.Name), zap.Error(err))
		return nil, fmt.Errorf("create quiz: %w", err)
	}

	s.logger.Info("quiz created", zap.Int64("quiz_id", quiz.ID), zap.Int("questions", len(questions)))

	view := newQuizView(quiz, questions)
	return &view, nil
}

// UpdateQuiz overwrites a quiz and replaces all of its questions. A request
// without isActive keeps the stored value.
func (s *QuizService) UpdateQuiz(ctx context.Context, id int64, req QuizRequest) (*QuizView, error) {
	if err := ValidateQuiz(req); err != nil {
		return nil, err
	}

	quiz, questions := buildQuiz(req)
	quiz.ID = id

	if req.IsActive == nil {
		current, err := s.quizzes.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrQuizNotFound) {
				return nil, ErrQuizNotFound
			}
			s.logger.Error("failed to load quiz for update", zap.Int64("quiz_id", id), zap.Error(err))
			return nil, fmt.Errorf("update quiz: %w", err)
		}
		quiz.IsActive = current.IsActive
	}
	s.warnUnlistedCategory(quiz)

	if err := s.quizzes.Update(ctx, quiz, questions); err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			return nil, ErrQuizNotFound
		}
		s.logger.Error("failed to update quiz", zap.Int64("quiz_id", id), zap.Error(err))
		return nil, fmt.Errorf("update quiz: %w", err)
	}

	s.logger.Info("quiz updated", zap.Int64("quiz_id", id), zap.Int("questions", len(questions)))

	view := newQuizView(quiz, questions)
	return &view, nil
}

// DeleteQuiz soft-deletes a quiz and its questions. Results stay intact.
func (s *QuizService) DeleteQuiz(ctx context.Context, id int64) error {
	if err := s.quizzes.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			return ErrQuizNotFound
		}
		s.logger.Error("failed to delete quiz", zap.Int64("quiz_id", id), zap.Error(err))
		return fmt.Errorf("delete quiz: %w", err)
	}

	s.logger.Info("quiz deleted", zap.Int64("quiz_id", id))
	return nil
}

// Categories returns the predefined quiz categories.
func (s *QuizService) Categories() []string {
	return entities.Categories()
}

// warnUnlistedCategory logs custom categories. They are accepted but do not
// show up in the predefined category list.
func (s *QuizService) warnUnlistedCategory(quiz *entities.Quiz) {
	if !entities.IsValidCategory(quiz.Category) {
		s.logger.Warn("quiz uses a category outside the predefined list",
			zap.Int64("quiz_id", quiz.ID), zap.String("category", quiz.Category))
	}
}

// buildQuiz maps a validated request to entities.
func buildQuiz(req QuizRequest) (*entities.Quiz, []*entities.Question) {
	quiz := entities.NewQuiz(strings.TrimSpace(req.Title), strings.TrimSpace(req.Description))
	quiz.Category = strings.TrimSpace(req.Category)
	quiz.Difficulty, _ = entities.NormalizeDifficulty(req.Difficulty)
	if req.TimeLimitMinutes != nil {
		quiz.TimeLimit = *req.TimeLimitMinutes
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}
	quiz.TotalQuestions = len(req.Questions)

	questions := make([]*entities.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, entities.NewQuestion(0, strings.TrimSpace(q.QuestionText), q.Options, q.CorrectAnswer))
	}

	return quiz, questions
}
