package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
	"github.com/aliskhannn/brainbuzz/internal/infra/postgres"
)

const resultColumns = `r.id, r.quiz_id, COALESCE(q.name, ''), r.username, r.score,
	r.total_questions, r.percentage, r.completed_at, r.time_spent, r.user_answers`

// ResultRepository provides access to completed quiz attempts.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository with the provided database pool.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create stores a result and fills its ID and quiz name. A result for an unknown quiz
// returns ErrQuizNotFound.
func (r *ResultRepository) Create(ctx context.Context, result *entities.QuizResult) error {
	query := `
		INSERT INTO quiz_results (
			quiz_id, username, score, total_questions, percentage,
			completed_at, time_spent, user_answers
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, COALESCE((SELECT name FROM quizzes WHERE id = quiz_id), '')
	`

	err := r.db.QueryRow(
		ctx, query,
		result.QuizID,
		result.Username,
		result.Score,
		result.TotalQuestions,
		result.Percentage,
		result.CompletedAt,
		result.TimeSpent,
		result.UserAnswers,
	).Scan(&result.ID, &result.QuizName)
	if err != nil {
		if _, ok := pgError(err, codeForeignKeyViolation); ok {
			return ErrQuizNotFound
		}
		return fmt.Errorf("create result: %w", err)
	}

	return nil
}

// ListByUsername returns the results of a user, newest first, with quiz names.
func (r *ResultRepository) ListByUsername(ctx context.Context, username string) ([]*entities.QuizResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM quiz_results r
		LEFT JOIN quizzes q ON q.id = r.quiz_id
		WHERE r.username = $1
		ORDER BY r.completed_at DESC, r.id DESC
	`

	return r.list(ctx, query, username)
}

// ListAll returns every result, newest first.
func (r *ResultRepository) ListAll(ctx context.Context) ([]*entities.QuizResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM quiz_results r
		LEFT JOIN quizzes q ON q.id = r.quiz_id
		ORDER BY r.completed_at DESC, r.id DESC
	`

	return r.list(ctx, query)
}

// ListByQuiz returns all results of a quiz, including soft-deleted quizzes.
func (r *ResultRepository) ListByQuiz(ctx context.Context, quizID int64) ([]*entities.QuizResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM quiz_results r
		LEFT JOIN quizzes q ON q.id = r.quiz_id
		WHERE r.quiz_id = $1
		ORDER BY r.completed_at DESC, r.id DESC
	`

	return r.list(ctx, query, quizID)
}

func (r *ResultRepository) list(ctx context.Context, query string, args ...any) ([]*entities.QuizResult, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []*entities.QuizResult
	for rows.Next() {
		var res entities.QuizResult
		if err := rows.Scan(
			&res.ID,
			&res.QuizID,
			&res.QuizName,
			&res.Username,
			&res.Score,
			&res.TotalQuestions,
			&res.Percentage,
			&res.CompletedAt,
			&res.TimeSpent,
			&res.UserAnswers,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return results, nil
}
