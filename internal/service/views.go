package service

import (
	"time"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
)

const unknownQuizName = "Unknown Quiz"

// QuizView is the display projection of a quiz.
type QuizView struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Category         string         `json:"category"`
	CategoryIcon     string         `json:"categoryIcon"`
	Difficulty       string         `json:"difficulty"`
	DifficultyBadge  string         `json:"difficultyBadge"`
	TimeLimitMinutes *int           `json:"timeLimitMinutes"`
	TimeLimitDisplay string         `json:"timeLimitDisplay,omitempty"`
	TotalQuestions   int            `json:"totalQuestions"`
	IsActive         bool           `json:"isActive"`
	CreatedAt        time.Time      `json:"createdAt"`
	Questions        []QuestionView `json:"questions"`
}

// QuestionView is the display projection of a question.
type QuestionView struct {
	ID            int64    `json:"id"`
	QuizID        int64    `json:"quizId"`
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"` // option letter
	QuestionOrder int      `json:"questionOrder"`
}

// ResultView is the display projection of a quiz result.
type ResultView struct {
	ID               int64     `json:"id"`
	QuizID           int64     `json:"quizId"`
	QuizName         string    `json:"quizName"`
	Username         string    `json:"username"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"totalQuestions"`
	Percentage       float64   `json:"percentage"`
	Grade            string    `json:"grade"`
	GradeColor       string    `json:"gradeColor"`
	CompletedAt      time.Time `json:"completedAt"`
	TimeSpent        int       `json:"timeSpent"`
	TimeSpentDisplay string    `json:"timeSpentDisplay"`
	UserAnswers      string    `json:"userAnswers"`
}

func newQuizView(quiz *entities.Quiz, questions []*entities.Question) QuizView {
	view := QuizView{
		ID:              quiz.ID,
		Title:           quiz.Name,
		Description:     quiz.Description,
		Category:        quiz.Category,
		CategoryIcon:    entities.CategoryIcon(quiz.Category),
		Difficulty:      quiz.Difficulty,
		DifficultyBadge: entities.DifficultyBadge(quiz.Difficulty),
		TotalQuestions:  quiz.TotalQuestions,
		IsActive:        quiz.IsActive,
		CreatedAt:       quiz.CreatedAt,
		Questions:       newQuestionViews(questions),
	}

	if quiz.TimeLimit > 0 {
		limit := quiz.TimeLimit
		view.TimeLimitMinutes = &limit
		view.TimeLimitDisplay = entities.FormatTimeLimit(limit)
	}

	return view
}

func newQuestionViews(questions []*entities.Question) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for i, q := range questions {
		views = append(views, QuestionView{
			ID:            q.ID,
			QuizID:        q.QuizID,
			QuestionText:  q.Text,
			Options:       q.Options(),
			CorrectAnswer: q.CorrectOption,
			QuestionOrder: i + 1,
		})
	}
	return views
}

func newResultView(r *entities.QuizResult) ResultView {
	name := r.QuizName
	if name == "" {
		name = unknownQuizName
	}

	return ResultView{
		ID:               r.ID,
		QuizID:           r.QuizID,
		QuizName:         name,
		Username:         r.Username,
		Score:            r.Score,
		TotalQuestions:   r.TotalQuestions,
		Percentage:       r.Percentage,
		Grade:            entities.Grade(r.Percentage),
		GradeColor:       entities.GradeColor(r.Percentage),
		CompletedAt:      r.CompletedAt,
		TimeSpent:        r.TimeSpent,
		TimeSpentDisplay: entities.FormatTimeSpent(r.TimeSpent),
		UserAnswers:      r.UserAnswers,
	}
}

func newResultViews(results []*entities.QuizResult) []ResultView {
	views := make([]ResultView, 0, len(results))
	for _, r := range results {
		views = append(views, newResultView(r))
	}
	return views
}
