package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
)

func newResultFixture(t *testing.T) (*ResultService, int64) {
	t.Helper()

	quizzes := newFakeQuizzes()
	quiz := entities.NewQuiz("Capitals", "")
	require.NoError(t, quizzes.Create(context.Background(), quiz, nil))

	svc := NewResultService(&fakeResults{quizzes: quizzes}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }

	return svc, quiz.ID
}

func TestResultService_SubmitBounds(t *testing.T) {
	ctx := context.Background()
	svc, quizID := newResultFixture(t)

	tests := []struct {
		name    string
		result  entities.QuizResult
		wantErr error
	}{
		{"zero score", entities.QuizResult{Score: 0, TotalQuestions: 5, Percentage: 0}, nil},
		{"perfect score", entities.QuizResult{Score: 5, TotalQuestions: 5, Percentage: 100}, nil},
		{"negative score", entities.QuizResult{Score: -1, TotalQuestions: 5}, ErrInvalidScore},
		{"score above total", entities.QuizResult{Score: 6, TotalQuestions: 5, Percentage: 100}, ErrInvalidScore},
		{"percentage above 100", entities.QuizResult{Score: 5, TotalQuestions: 5, Percentage: 100.5}, ErrInvalidPercentage},
		{"negative percentage", entities.QuizResult{Score: 0, TotalQuestions: 5, Percentage: -1}, ErrInvalidPercentage},
		{"negative time", entities.QuizResult{Score: 1, TotalQuestions: 5, Percentage: 20, TimeSpent: -3}, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.result
			r.QuizID = quizID
			r.Username = "lee"

			view, err := svc.SubmitResult(ctx, &r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, view.ID)
		})
	}
}

func TestResultService_SubmitFillsDefaults(t *testing.T) {
	svc, quizID := newResultFixture(t)

	view, err := svc.SubmitResult(context.Background(), &entities.QuizResult{
		QuizID: quizID, Username: "mia", Score: 4, TotalQuestions: 5, Percentage: 80, TimeSpent: 125,
	})
	require.NoError(t, err)

	assert.Equal(t, "Capitals", view.QuizName)
	assert.Equal(t, "A", view.Grade)
	assert.Equal(t, "text-success", view.GradeColor)
	assert.Equal(t, "2:05", view.TimeSpentDisplay)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), view.CompletedAt)
}

func TestResultService_SubmitUnknownQuiz(t *testing.T) {
	svc, _ := newResultFixture(t)

	_, err := svc.SubmitResult(context.Background(), &entities.QuizResult{
		QuizID: 9999, Username: "ned", Score: 1, TotalQuestions: 1, Percentage: 100,
	})
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestResultService_ListsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, quizID := newResultFixture(t)

	for _, user := range []string{"oli", "pam", "oli"} {
		_, err := svc.SubmitResult(ctx, &entities.QuizResult{
			QuizID: quizID, Username: user, Score: 1, TotalQuestions: 2, Percentage: 50,
		})
		require.NoError(t, err)
	}

	mine, err := svc.GetUserResults(ctx, "oli")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Greater(t, mine[0].ID, mine[1].ID)

	all, err := svc.GetAllResults(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestResultService_Statistics(t *testing.T) {
	ctx := context.Background()
	svc, quizID := newResultFixture(t)

	attempts := []entities.QuizResult{
		{Score: 4, TotalQuestions: 4, Percentage: 100, TimeSpent: 60},
		{Score: 2, TotalQuestions: 4, Percentage: 50, TimeSpent: 31},
		{Score: 0, TotalQuestions: 4, Percentage: 0, TimeSpent: 10},
	}
	for _, a := range attempts {
		a.QuizID = quizID
		a.Username = "quinn"
		_, err := svc.SubmitResult(ctx, &a)
		require.NoError(t, err)
	}

	stats, err := svc.GetQuizStatistics(ctx, quizID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalAttempts)
	assert.Equal(t, 50.0, stats.AverageScore)
	assert.Equal(t, 33, stats.AverageTime)
	assert.Equal(t, 100.0, stats.BestScore)
	assert.Equal(t, 66.67, stats.CompletionRate)
}

func TestResultService_StatisticsEmpty(t *testing.T) {
	svc, quizID := newResultFixture(t)

	stats, err := svc.GetQuizStatistics(context.Background(), quizID)
	require.NoError(t, err)
	assert.Equal(t, entities.QuizStatistics{}, *stats)
}

func TestComputeStatistics_Rounding(t *testing.T) {
	stats := computeStatistics([]*entities.QuizResult{
		{Score: 1, Percentage: 33.333},
		{Score: 2, Percentage: 66.667},
		{Score: 2, Percentage: 66.667},
	})

	assert.Equal(t, 55.56, stats.AverageScore)
	assert.Equal(t, 66.667, stats.BestScore)
	assert.Equal(t, 100.0, stats.CompletionRate)
}
