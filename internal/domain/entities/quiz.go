package entities

import "time"

const (
	DefaultCategory   = "General"
	DefaultDifficulty = "Medium"
)

// Quiz is a named set of multiple-choice questions.
type Quiz struct {
	ID             int64
	Name           string
	Description    string
	Category       string
	Difficulty     string // "Easy", "Medium" or "Hard"
	TimeLimit      int    // minutes, 0 means no limit
	TotalQuestions int
	IsActive       bool
	IsDeleted      bool
	CreatedAt      time.Time
}

// NewQuiz creates an active quiz with default category and difficulty.
func NewQuiz(name, description string) *Quiz {
	return &Quiz{
		Name:        name,
		Description: description,
		Category:    DefaultCategory,
		Difficulty:  DefaultDifficulty,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
}
