package repositories

import (
	"context"

	"github.com/coursebay/lms_backend/internal/core/domain"
)

// QuizAttemptRepository stores graded quiz attempts.
type QuizAttemptRepository interface {
	SaveQuizAttempt(ctx context.Context, attempt domain.QuizAttempt) error
	ListAttemptsByUserAndCourse(ctx context.Context, userID, courseID string) ([]domain.QuizAttempt, error)
}
