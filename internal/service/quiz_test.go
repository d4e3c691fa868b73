package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
)

func intPtr(v int) *int { return &v }
func boolPtr(v bool) *bool { return &v }

func sampleQuizRequest(title string) QuizRequest {
	return QuizRequest{
		Title:       title,
		Description: "warm-up round",
		Category:    "Science",
		Difficulty:  "easy",
		Questions: []QuestionRequest{
			{QuestionText: "H2O is?", Options: []string{"Water", "Salt", "Iron"}, CorrectAnswer: "a"},
			{QuestionText: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "B"},
		},
	}
}

func TestQuizService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewQuizService(newFakeQuizzes(), zap.NewNop())

	req := sampleQuizRequest("Chemistry")
	req.TimeLimitMinutes = intPtr(15)

	created, err := svc.CreateQuiz(ctx, req)
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Easy", created.Difficulty)
	assert.True(t, created.IsActive)
	assert.Equal(t, 2, created.TotalQuestions)
	require.NotNil(t, created.TimeLimitMinutes)
	assert.Equal(t, 15, *created.TimeLimitMinutes)
	assert.Equal(t, "15 min", created.TimeLimitDisplay)

	got, err := svc.GetQuiz(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, []string{"Water", "Salt", "Iron"}, got.Questions[0].Options)
	assert.Equal(t, "A", got.Questions[0].CorrectAnswer)
	assert.Equal(t, 1, got.Questions[0].QuestionOrder)
	assert.Equal(t, 2, got.Questions[1].QuestionOrder)

	questions, err := svc.GetQuestions(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestQuizService_CreateRejectsInvalid(t *testing.T) {
	repo := newFakeQuizzes()
	svc := NewQuizService(repo, zap.NewNop())

	req := sampleQuizRequest("")
	req.Questions[1].CorrectAnswer = "D"

	_, err := svc.CreateQuiz(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "questions[1].correctAnswer")
	assert.Empty(t, repo.quizzes)
}

func TestQuizService_ListActiveOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewQuizService(newFakeQuizzes(), zap.NewNop())

	_, err := svc.CreateQuiz(ctx, sampleQuizRequest("Zoology"))
	require.NoError(t, err)

	hidden := sampleQuizRequest("Astronomy")
	hidden.IsActive = boolPtr(false)
	_, err = svc.CreateQuiz(ctx, hidden)
	require.NoError(t, err)

	all, err := svc.ListQuizzes(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Astronomy", all[0].Title)
	assert.Len(t, all[0].Questions, 2)

	active, err := svc.ListQuizzes(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Zoology", active[0].Title)
}

func TestQuizService_UpdateReplacesQuestions(t *testing.T) {
	ctx := context.Background()
	svc := NewQuizService(newFakeQuizzes(), zap.NewNop())

	created, err := svc.CreateQuiz(ctx, sampleQuizRequest("History"))
	require.NoError(t, err)

	req := sampleQuizRequest("History II")
	req.Questions = req.Questions[:1]

	updated, err := svc.UpdateQuiz(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "History II", updated.Title)
	assert.Equal(t, 1, updated.TotalQuestions)

	questions, err := svc.GetQuestions(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, questions, 1)

	_, err = svc.UpdateQuiz(ctx, 404, req)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizService_UpdateKeepsActiveFlag(t *testing.T) {
	ctx := context.Background()
	svc := NewQuizService(newFakeQuizzes(), zap.NewNop())

	req := sampleQuizRequest("Draft")
	req.IsActive = boolPtr(false)
	created, err := svc.CreateQuiz(ctx, req)
	require.NoError(t, err)
	require.False(t, created.IsActive)

	edit := sampleQuizRequest("Draft v2")
	updated, err := svc.UpdateQuiz(ctx, created.ID, edit)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	got, err := svc.GetQuiz(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	edit.IsActive = boolPtr(true)
	updated, err = svc.UpdateQuiz(ctx, created.ID, edit)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
}

func TestQuizService_WarnsOnUnlistedCategory(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	svc := NewQuizService(newFakeQuizzes(), zap.New(core))

	created, err := svc.CreateQuiz(ctx, sampleQuizRequest("Listed"))
	require.NoError(t, err)
	assert.Zero(t, logs.Len())

	req := sampleQuizRequest("Custom")
	req.Category = "Board Games"
	_, err = svc.CreateQuiz(ctx, req)
	require.NoError(t, err)

	_, err = svc.UpdateQuiz(ctx, created.ID, req)
	require.NoError(t, err)

	warned := logs.FilterMessage("quiz uses a category outside the predefined list").All()
	require.Len(t, warned, 2)
	assert.Equal(t, "Board Games", warned[0].ContextMap()["category"])
}

func TestQuizService_DeleteKeepsResults(t *testing.T) {
	ctx := context.Background()
	quizzes := newFakeQuizzes()
	svc := NewQuizService(quizzes, zap.NewNop())
	results := NewResultService(&fakeResults{quizzes: quizzes}, zap.NewNop())

	created, err := svc.CreateQuiz(ctx, sampleQuizRequest("Geography"))
	require.NoError(t, err)

	_, err = results.SubmitResult(ctx, &entities.QuizResult{
		QuizID: created.ID, Username: "kim", Score: 2, TotalQuestions: 2, Percentage: 100, TimeSpent: 40,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuiz(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteQuiz(ctx, created.ID), ErrQuizNotFound)

	list, err := svc.ListQuizzes(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.GetQuiz(ctx, created.ID)
	assert.ErrorIs(t, err, ErrQuizNotFound)

	stats, err := results.GetQuizStatistics(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalAttempts)
	assert.Equal(t, 100.0, stats.BestScore)
}

func TestQuizService_Categories(t *testing.T) {
	svc := NewQuizService(newFakeQuizzes(), zap.NewNop())

	cats := svc.Categories()
	assert.Len(t, cats, 20)
	cats[0] = "mutated"
	assert.Equal(t, "General Knowledge", svc.Categories()[0])
}
