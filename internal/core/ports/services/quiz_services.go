package services

import (
	"context"

	"github.com/coursebay/lms_backend/internal/dto"
)

// QuizSvcFacade serves and grades course quizzes.
type QuizSvcFacade interface {
	// GetQuiz returns up to QuizSize random questions (answers stripped) for
	// an enrolled learner.
	GetQuiz(ctx context.Context, userID, courseID string) ([]dto.QuizQuestionResponse, error)

	// SubmitQuiz grades a submission; a first passing attempt completes the
	// course and issues a certificate.
	SubmitQuiz(ctx context.Context, userID, courseID string, req dto.SubmitQuizRequest) (*dto.QuizResult, error)

	// ListAttempts returns the learner's attempt history for a course.
	ListAttempts(ctx context.Context, userID, courseID string) ([]dto.QuizAttemptResponse, error)
}
