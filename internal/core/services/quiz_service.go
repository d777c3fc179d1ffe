package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/coursebay/lms_backend/internal/middleware"
	"github.com/coursebay/lms_backend/internal/utils"
	"github.com/google/uuid"
)

const (
	// QuizSize is the number of questions served per attempt; a course quiz
	// is unavailable until its question bank reaches this size.
	QuizSize = 10

	// PassScore is the minimum correct answers for a passing attempt.
	PassScore = 8
)

// QuizService serves randomized quizzes and grades submissions. A first
// passing attempt completes the enrollment and issues a certificate.
type QuizService struct {
	courseRepo  portsrepo.CourseRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	attemptRepo portsrepo.QuizAttemptRepository
	certRepo    portsrepo.CertificateRepository
}

func NewQuizService(courseRepo portsrepo.CourseRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, attemptRepo portsrepo.QuizAttemptRepository, certRepo portsrepo.CertificateRepository) *QuizService {
	return &QuizService{
		courseRepo:  courseRepo,
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		certRepo:    certRepo,
	}
}

func (s *QuizService) GetQuiz(ctx context.Context, userID, courseID string) ([]dto.QuizQuestionResponse, error) {
	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return nil, err
	}

	questions, err := s.courseRepo.ListQuizQuestionsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if len(questions) < QuizSize {
		return nil, fmt.Errorf("%w: quiz is not available yet for this course", apperrors.ErrValidation)
	}

	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	selected := questions[:QuizSize]

	res := make([]dto.QuizQuestionResponse, len(selected))
	for i, q := range selected {
		res[i] = dto.QuizQuestionResponse{
			QuestionID: q.QuestionID,
			Question:   q.Question,
			Options:    q.Options,
			Index:      i,
		}
	}
	return res, nil
}

func (s *QuizService) SubmitQuiz(ctx context.Context, userID, courseID string, req dto.SubmitQuizRequest) (*dto.QuizResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	enrollment, err := s.findEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if len(req.Answers) != QuizSize {
		return nil, fmt.Errorf("%w: expected %d answers", apperrors.ErrValidation, QuizSize)
	}

	questions, err := s.courseRepo.ListQuizQuestionsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	correctByID := make(map[string]int, len(questions))
	for _, q := range questions {
		correctByID[q.QuestionID] = q.CorrectAnswer
	}

	score := 0
	answers := make([]domain.QuizAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		correct, known := correctByID[a.QuestionID]
		if !known {
			return nil, fmt.Errorf("%w: unknown question %s", apperrors.ErrValidation, a.QuestionID)
		}
		isCorrect := a.SelectedAnswer == correct
		if isCorrect {
			score++
		}
		answers = append(answers, domain.QuizAnswer{
			QuestionID:     a.QuestionID,
			SelectedAnswer: a.SelectedAnswer,
			Correct:        isCorrect,
		})
	}
	passed := score >= PassScore

	now := time.Now()
	attempt := domain.QuizAttempt{
		AttemptID:      uuid.NewString(),
		UserID:         userID,
		CourseID:       courseID,
		Score:          score,
		TotalQuestions: QuizSize,
		Passed:         passed,
		Answers:        answers,
		CreatedAt:      now,
	}
	if err := s.attemptRepo.SaveQuizAttempt(ctx, attempt); err != nil {
		logger.Error("Failed to save quiz attempt", slog.String("error", err.Error()), slog.String("course_id", courseID))
		return nil, err
	}

	result := &dto.QuizResult{
		Score:          score,
		TotalQuestions: QuizSize,
		Passed:         passed,
	}
	if !passed {
		result.Message = fmt.Sprintf("You scored %d/%d. A score of %d or higher is required to pass.", score, QuizSize, PassScore)
		return result, nil
	}
	result.Message = fmt.Sprintf("Congratulations! You scored %d/%d and passed the quiz.", score, QuizSize)

	cert, err := s.completeCourse(ctx, userID, courseID, enrollment, now)
	if err != nil {
		logger.Error("Failed to complete course after passing quiz",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID),
			slog.String("user_id", userID))
		return nil, err
	}
	if cert != nil {
		certResp := dto.ToCertificateResponse(cert)
		result.Certificate = &certResp
	}

	logger.Info("Quiz passed",
		slog.String("course_id", courseID),
		slog.String("user_id", userID),
		slog.Int("score", score))
	return result, nil
}

// completeCourse marks the enrollment complete and issues the certificate.
// Both steps are idempotent so a repeat pass changes nothing.
func (s *QuizService) completeCourse(ctx context.Context, userID, courseID string, enrollment *domain.Enrollment, at time.Time) (*domain.Certificate, error) {
	if !enrollment.Completed {
		if err := s.userRepo.MarkEnrollmentCompleted(ctx, userID, courseID, at); err != nil {
			return nil, err
		}
	}

	existing, err := s.certRepo.FindCertificateByUserAndCourse(ctx, userID, courseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	cert := domain.Certificate{
		CertificateID:  utils.NewCertificateID(),
		UserID:         userID,
		UserName:       user.Name,
		CourseID:       courseID,
		CourseTitle:    course.Title,
		CompletionDate: at,
		IssuedDate:     at,
	}
	if err := s.certRepo.SaveCertificate(ctx, cert); err != nil {
		// A concurrent pass may have issued it first.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.certRepo.FindCertificateByUserAndCourse(ctx, userID, courseID)
		}
		return nil, err
	}
	return &cert, nil
}

func (s *QuizService) ListAttempts(ctx context.Context, userID, courseID string) ([]dto.QuizAttemptResponse, error) {
	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.ListAttemptsByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return dto.ToQuizAttemptResponses(attempts), nil
}

func (s *QuizService) requireEnrollment(ctx context.Context, userID, courseID string) error {
	_, err := s.findEnrollment(ctx, userID, courseID)
	return err
}

func (s *QuizService) findEnrollment(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	enrollment, err := s.userRepo.FindEnrollment(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: enrollment required for this course", apperrors.ErrForbidden)
		}
		return nil, err
	}
	return enrollment, nil
}
