package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
	"github.com/aliskhannn/brainbuzz/internal/infra/postgres/repository"
)

var (
	ErrInvalidScore      = errors.New("score must be between 0 and the number of questions")
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
	ErrInvalidDuration   = errors.New("time spent must not be negative")
)

// ResultService records quiz attempts and aggregates them.
type ResultService struct {
	results ResultRepository
	logger  *zap.Logger
	now     func() time.Time
}

func NewResultService(results ResultRepository, logger *zap.Logger) *ResultService {
	return &ResultService{results: results, logger: logger, now: time.Now}
}

// ValidateResult checks the bounds of a completed attempt.
func ValidateResult(r *entities.QuizResult) error {
	if r.Score < 0 || r.Score > r.TotalQuestions {
		return ErrInvalidScore
	}
	if r.Percentage < 0 || r.Percentage > 100 {
		return ErrInvalidPercentage
	}
	if r.TimeSpent < 0 {
		return ErrInvalidDuration
	}
	return nil
}

// SubmitResult validates and stores a completed attempt.
func (s *ResultService) SubmitResult(ctx context.Context, result *entities.QuizResult) (*ResultView, error) {
	if err := ValidateResult(result); err != nil {
		s.logger.Warn("rejected quiz result",
			zap.String("username", result.Username),
			zap.Int64("quiz_id", result.QuizID),
			zap.Error(err),
		)
		return nil, err
	}

	if result.CompletedAt.IsZero() {
		result.CompletedAt = s.now().UTC()
	}

	if err := s.results.Create(ctx, result); err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			return nil, ErrQuizNotFound
		}
		s.logger.Error("failed to save quiz result", zap.String("username", result.Username), zap.Error(err))
		return nil, fmt.Errorf("save result: %w", err)
	}

	s.logger.Info("quiz result saved",
		zap.Int64("result_id", result.ID),
		zap.Int64("quiz_id", result.QuizID),
		zap.String("username", result.Username),
	)

	view := newResultView(result)
	return &view, nil
}

// GetUserResults returns the results of a user, newest first.
func (s *ResultService) GetUserResults(ctx context.Context, username string) ([]ResultView, error) {
	results, err := s.results.ListByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to list user results", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return newResultViews(results), nil
}

// GetAllResults returns every stored result, newest first.
func (s *ResultService) GetAllResults(ctx context.Context) ([]ResultView, error) {
	results, err := s.results.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list results", zap.Error(err))
		return nil, err
	}
	return newResultViews(results), nil
}

// GetQuizStatistics aggregates all attempts of a quiz, including attempts of
// quizzes that were deleted since.
func (s *ResultService) GetQuizStatistics(ctx context.Context, quizID int64) (*entities.QuizStatistics, error) {
	results, err := s.results.ListByQuiz(ctx, quizID)
	if err != nil {
		s.logger.Error("failed to load quiz results", zap.Int64("quiz_id", quizID), zap.Error(err))
		return nil, err
	}

	stats := computeStatistics(results)
	return &stats, nil
}

func computeStatistics(results []*entities.QuizResult) entities.QuizStatistics {
	if len(results) == 0 {
		return entities.QuizStatistics{}
	}

	var (
		percentSum = decimal.Zero
		timeSum    int64
		best       float64
		completed  int64
	)
	for i, r := range results {
		percentSum = percentSum.Add(decimal.NewFromFloat(r.Percentage))
		timeSum += int64(r.TimeSpent)
		if i == 0 || r.Percentage > best {
			best = r.Percentage
		}
		if r.Score > 0 {
			completed++
		}
	}

	count := decimal.NewFromInt(int64(len(results)))
	hundred := decimal.NewFromInt(100)

	return entities.QuizStatistics{
		TotalAttempts:  len(results),
		AverageScore:   percentSum.Div(count).Round(2).InexactFloat64(),
		AverageTime:    int(timeSum / int64(len(results))),
		BestScore:      best,
		CompletionRate: decimal.NewFromInt(completed).Mul(hundred).Div(count).Round(2).InexactFloat64(),
	}
}
