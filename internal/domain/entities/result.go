package entities

import "time"

// QuizResult is a completed quiz attempt.
type QuizResult struct {
	ID             int64
	QuizID         int64
	QuizName       string // joined from quizzes, empty when not loaded
	Username       string
	Score          int
	TotalQuestions int
	Percentage     float64
	CompletedAt    time.Time
	TimeSpent      int    // seconds
	UserAnswers    string // JSON encoded answer record
}

// QuizStatistics aggregates all attempts of one quiz.
type QuizStatistics struct {
	TotalAttempts  int     `json:"totalAttempts"`
	AverageScore   float64 `json:"averageScore"`
	AverageTime    int     `json:"averageTime"`
	BestScore      float64 `json:"bestScore"`
	CompletionRate float64 `json:"completionRate"`
}
