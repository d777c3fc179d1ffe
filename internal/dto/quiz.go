package dto

import (
	"time"

	"github.com/coursebay/lms_backend/internal/core/domain"
)

// QuizQuestionResponse is a question as served to a learner, with the correct
// answer stripped.
type QuizQuestionResponse struct {
	QuestionID string   `json:"questionID"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Index      int      `json:"index"`
}

// SubmitQuizAnswer is one answered question in a quiz submission.
type SubmitQuizAnswer struct {
	QuestionID     string `json:"questionId" binding:"required"`
	SelectedAnswer int    `json:"selectedAnswer"`
}

// SubmitQuizRequest is the payload for grading a quiz.
type SubmitQuizRequest struct {
	Answers []SubmitQuizAnswer `json:"answers" binding:"required"`
}

// QuizResult reports a graded quiz attempt.
type QuizResult struct {
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Passed         bool   `json:"passed"`
	Message        string `json:"message"`

	// Certificate is set when this attempt completed the course.
	Certificate *CertificateResponse `json:"certificate,omitempty"`
}

// QuizAttemptResponse is the public view of a stored attempt.
type QuizAttemptResponse struct {
	AttemptID      string    `json:"attemptID"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Passed         bool      `json:"passed"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToQuizAttemptResponses converts stored attempts to their public view.
func ToQuizAttemptResponses(attempts []domain.QuizAttempt) []QuizAttemptResponse {
	res := make([]QuizAttemptResponse, len(attempts))
	for i, a := range attempts {
		res[i] = QuizAttemptResponse{
			AttemptID:      a.AttemptID,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			Passed:         a.Passed,
			CreatedAt:      a.CreatedAt,
		}
	}
	return res
}
