package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type quizAttemptRepository struct {
	pool *pgxpool.Pool
}

// NewQuizAttemptRepository creates a new repository for graded quiz attempts.
func NewQuizAttemptRepository(pool *pgxpool.Pool) portsrepo.QuizAttemptRepository {
	return &quizAttemptRepository{pool: pool}
}

var _ portsrepo.QuizAttemptRepository = (*quizAttemptRepository)(nil)

func (r *quizAttemptRepository) SaveQuizAttempt(ctx context.Context, attempt domain.QuizAttempt) error {
	answers, err := json.Marshal(attempt.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz answers: %w", err)
	}

	query := `
		INSERT INTO quiz_attempts (attempt_id, user_id, course_id, score, total_questions, passed, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.pool.Exec(ctx, query,
		attempt.AttemptID,
		attempt.UserID,
		attempt.CourseID,
		attempt.Score,
		attempt.TotalQuestions,
		attempt.Passed,
		answers,
		attempt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz attempt %s: %w", attempt.AttemptID, err)
	}
	return nil
}

func (r *quizAttemptRepository) ListAttemptsByUserAndCourse(ctx context.Context, userID, courseID string) ([]domain.QuizAttempt, error) {
	query := `
		SELECT attempt_id, user_id, course_id, score, total_questions, passed, answers, created_at
		FROM quiz_attempts WHERE user_id = $1 AND course_id = $2 ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]domain.QuizAttempt, 0)
	for rows.Next() {
		var a domain.QuizAttempt
		var answers []byte
		if err := rows.Scan(&a.AttemptID, &a.UserID, &a.CourseID, &a.Score, &a.TotalQuestions, &a.Passed, &answers, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz attempt row: %w", err)
		}
		if len(answers) > 0 {
			if err := json.Unmarshal(answers, &a.Answers); err != nil {
				return nil, fmt.Errorf("failed to unmarshal quiz answers: %w", err)
			}
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
