package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
	"github.com/aliskhannn/brainbuzz/internal/infra/postgres"
)

var ErrQuizNotFound = errors.New("quiz not found")

const (
	quizColumns = `id, name, description, category, difficulty, time_limit,
		total_questions, is_active, is_deleted, created_at`
	questionColumns = `id, quiz_id, question_text, option_a, option_b, option_c,
		option_d, correct_option, is_deleted`
)

// QuizRepository provides access to quizzes and their questions.
type QuizRepository struct {
	db postgres.DBTX
	tx *postgres.Transactor
}

// NewQuizRepository creates a new QuizRepository. Writes that touch both
// quizzes and questions run in a transaction started by tx.
func NewQuizRepository(db postgres.DBTX, tx *postgres.Transactor) *QuizRepository {
	return &QuizRepository{db: db, tx: tx}
}

// List returns non-deleted quizzes ordered by name.
func (r *QuizRepository) List(ctx context.Context, activeOnly bool) ([]*entities.Quiz, error) {
	query := `
		SELECT ` + quizColumns + `
		FROM quizzes
		WHERE NOT is_deleted AND (is_active OR NOT $1)
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []*entities.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quizzes: %w", err)
	}

	return quizzes, nil
}

// GetByID returns a non-deleted quiz.
func (r *QuizRepository) GetByID(ctx context.Context, id int64) (*entities.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1 AND NOT is_deleted`

	quiz, err := scanQuiz(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	return quiz, nil
}

// ListQuestions returns the non-deleted questions of a quiz in stored order.
func (r *QuizRepository) ListQuestions(ctx context.Context, quizID int64) ([]*entities.Question, error) {
	grouped, err := r.ListQuestionsByQuizIDs(ctx, []int64{quizID})
	if err != nil {
		return nil, err
	}
	return grouped[quizID], nil
}

// ListQuestionsByQuizIDs loads the non-deleted questions of several quizzes at
// once, grouped by quiz ID.
func (r *QuizRepository) ListQuestionsByQuizIDs(ctx context.Context, quizIDs []int64) (map[int64][]*entities.Question, error) {
	grouped := make(map[int64][]*entities.Question, len(quizIDs))
	if len(quizIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE quiz_id = ANY($1) AND NOT is_deleted
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q entities.Question
		if err := rows.Scan(
			&q.ID,
			&q.QuizID,
			&q.Text,
			&q.OptionA,
			&q.OptionB,
			&q.OptionC,
			&q.OptionD,
			&q.CorrectOption,
			&q.IsDeleted,
		); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		grouped[q.QuizID] = append(grouped[q.QuizID], &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return grouped, nil
}

// Create inserts a quiz together with its questions. The quiz ID and
// question IDs are filled in on success.
func (r *QuizRepository) Create(ctx context.Context, quiz *entities.Quiz, questions []*entities.Question) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO quizzes (
				name, description, category, difficulty, time_limit,
				total_questions, is_active, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at
		`

		err := tx.QueryRow(
			ctx, query,
			quiz.Name,
			quiz.Description,
			quiz.Category,
			quiz.Difficulty,
			quiz.TimeLimit,
			quiz.TotalQuestions,
			quiz.IsActive,
			quiz.CreatedAt,
		).Scan(&quiz.ID, &quiz.CreatedAt)
		if err != nil {
			return fmt.Errorf("create quiz: %w", err)
		}

		return insertQuestions(ctx, tx, quiz.ID, questions)
	})
}

// Update overwrites a quiz and replaces its whole question set. Concurrent
// updates are not detected, the last writer wins.
func (r *QuizRepository) Update(ctx context.Context, quiz *entities.Quiz, questions []*entities.Question) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE quizzes
			SET name = $1,
			    description = $2,
			    category = $3,
			    difficulty = $4,
			    time_limit = $5,
			    total_questions = $6,
			    is_active = $7
			WHERE id = $8 AND NOT is_deleted
			RETURNING created_at
		`

		err := tx.QueryRow(
			ctx, query,
			quiz.Name,
			quiz.Description,
			quiz.Category,
			quiz.Difficulty,
			quiz.TimeLimit,
			quiz.TotalQuestions,
			quiz.IsActive,
			quiz.ID,
		).Scan(&quiz.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrQuizNotFound
			}
			return fmt.Errorf("update quiz: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE quiz_id = $1`, quiz.ID); err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}

		return insertQuestions(ctx, tx, quiz.ID, questions)
	})
}

// SoftDelete flags a quiz and all of its questions as deleted. Results keep
// referencing the quiz.
func (r *QuizRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `UPDATE quizzes SET is_deleted = TRUE WHERE id = $1 AND NOT is_deleted`, id)
		if err != nil {
			return fmt.Errorf("delete quiz: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrQuizNotFound
		}

		_, err = tx.Exec(ctx, `UPDATE questions SET is_deleted = TRUE WHERE quiz_id = $1 AND NOT is_deleted`, id)
		if err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}

		return nil
	})
}

func insertQuestions(ctx context.Context, tx pgx.Tx, quizID int64, questions []*entities.Question) error {
	if len(questions) == 0 {
		return nil
	}

	query := `
		INSERT INTO questions (
			quiz_id, question_text, option_a, option_b, option_c, option_d, correct_option
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, q := range questions {
		q.QuizID = quizID
		batch.Queue(query, quizID, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption)
	}

	br := tx.SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()

	for _, q := range questions {
		if err := br.QueryRow().Scan(&q.ID); err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
	}

	return br.Close()
}

func scanQuiz(row rowScanner) (*entities.Quiz, error) {
	var quiz entities.Quiz
	err := row.Scan(
		&quiz.ID,
		&quiz.Name,
		&quiz.Description,
		&quiz.Category,
		&quiz.Difficulty,
		&quiz.TimeLimit,
		&quiz.TotalQuestions,
		&quiz.IsActive,
		&quiz.IsDeleted,
		&quiz.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}
