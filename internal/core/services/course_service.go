package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	portssvc "github.com/coursebay/lms_backend/internal/core/ports/services"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/coursebay/lms_backend/internal/middleware"
	"github.com/coursebay/lms_backend/internal/platform/config"
	"github.com/google/uuid"
)

// CourseService manages the catalog: uploads, edits, materials, quiz content
// and learner enrollment views. Upload rewards are delegated to the ledger.
type CourseService struct {
	cfg        *config.Config
	courseRepo portsrepo.CourseRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	ledger     portssvc.LedgerSvcFacade
}

func NewCourseService(cfg *config.Config, courseRepo portsrepo.CourseRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, ledger portssvc.LedgerSvcFacade) *CourseService {
	return &CourseService{
		cfg:        cfg,
		courseRepo: courseRepo,
		userRepo:   userRepo,
		ledger:     ledger,
	}
}

func (s *CourseService) UploadCourse(ctx context.Context, instructorUserID string, req dto.CreateCourseRequest) (*domain.Course, *domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	instructor, err := s.userRepo.FindUserByID(ctx, instructorUserID)
	if err != nil {
		return nil, nil, err
	}
	if instructor.BankAccountNumber == nil {
		return nil, nil, fmt.Errorf("%w: bank account setup required before uploading a course", apperrors.ErrValidation)
	}
	if !req.Price.IsPositive() {
		return nil, nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}

	activeCount, err := s.courseRepo.CountActiveCourses(ctx)
	if err != nil {
		return nil, nil, err
	}
	if activeCount >= s.cfg.MaxActiveCourses {
		return nil, nil, fmt.Errorf("%w: marketplace limit of %d active courses reached", apperrors.ErrValidation, s.cfg.MaxActiveCourses)
	}

	existing, err := s.courseRepo.FindCourseByInstructorAndTitle(ctx, instructorUserID, req.Title)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("%w: you already have a course with this title", apperrors.ErrDuplicate)
	}

	now := time.Now()
	course := domain.Course{
		CourseID:       uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		InstructorID:   instructor.UserID,
		InstructorName: instructor.Name,
		Category:       req.Category,
		Duration:       req.Duration,
		Thumbnail:      req.Thumbnail,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     instructorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: instructorUserID,
		},
	}
	if err := s.courseRepo.SaveCourse(ctx, course); err != nil {
		logger.Error("Failed to save course", slog.String("error", err.Error()), slog.String("course_id", course.CourseID))
		return nil, nil, err
	}

	txn, err := s.ledger.PayCourseUploadReward(ctx, instructor, &course)
	if err != nil {
		// The course stays listed even when the reward could not be
		// recorded; the instructor can chase the payment separately.
		logger.Error("Upload reward failed after course creation",
			slog.String("error", err.Error()),
			slog.String("course_id", course.CourseID))
		return &course, nil, nil
	}

	logger.Info("Course uploaded",
		slog.String("course_id", course.CourseID),
		slog.String("instructor_id", instructorUserID),
		slog.String("title", course.Title))
	return &course, txn, nil
}

func (s *CourseService) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	return s.courseRepo.FindCourseByID(ctx, courseID)
}

func (s *CourseService) ListActiveCourses(ctx context.Context) ([]domain.Course, error) {
	return s.courseRepo.ListActiveCourses(ctx)
}

func (s *CourseService) ListAllCourses(ctx context.Context) ([]domain.Course, error) {
	return s.courseRepo.ListAllCourses(ctx)
}

func (s *CourseService) ListCoursesByInstructor(ctx context.Context, instructorUserID string) ([]domain.Course, error) {
	return s.courseRepo.ListCoursesByInstructor(ctx, instructorUserID)
}

func (s *CourseService) UpdateCourse(ctx context.Context, instructorUserID, courseID string, req dto.UpdateCourseRequest) (*domain.Course, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	course, err := s.ownedCourse(ctx, instructorUserID, courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
		}
		course.Price = *req.Price
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.IsActive != nil {
		// Re-activation competes for the marketplace cap like an upload.
		if *req.IsActive && !course.IsActive {
			activeCount, err := s.courseRepo.CountActiveCourses(ctx)
			if err != nil {
				return nil, err
			}
			if activeCount >= s.cfg.MaxActiveCourses {
				return nil, fmt.Errorf("%w: marketplace limit of %d active courses reached", apperrors.ErrValidation, s.cfg.MaxActiveCourses)
			}
		}
		course.IsActive = *req.IsActive
	}
	course.LastUpdatedAt = time.Now()
	course.LastUpdatedBy = instructorUserID

	if err := s.courseRepo.UpdateCourse(ctx, *course); err != nil {
		logger.Error("Failed to update course", slog.String("error", err.Error()), slog.String("course_id", courseID))
		return nil, err
	}
	return course, nil
}

func (s *CourseService) AddMaterial(ctx context.Context, instructorUserID, courseID string, req dto.AddMaterialRequest) (*domain.Material, error) {
	if _, err := s.ownedCourse(ctx, instructorUserID, courseID); err != nil {
		return nil, err
	}

	material := domain.Material{
		MaterialID:  uuid.NewString(),
		CourseID:    courseID,
		Kind:        domain.MaterialKind(req.Kind),
		Title:       req.Title,
		ContentURL:  req.ContentURL,
		Description: req.Description,
		UploadedAt:  time.Now(),
	}
	if err := s.courseRepo.SaveMaterial(ctx, material); err != nil {
		return nil, err
	}
	return &material, nil
}

// ListMaterials gates course content to the owning instructor or an enrolled
// learner.
func (s *CourseService) ListMaterials(ctx context.Context, callerUserID, courseID string) ([]domain.Material, error) {
	course, err := s.courseRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != callerUserID {
		if _, err := s.userRepo.FindEnrollment(ctx, callerUserID, courseID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: enrollment required to access course content", apperrors.ErrForbidden)
			}
			return nil, err
		}
	}
	return s.courseRepo.ListMaterialsByCourse(ctx, courseID)
}

func (s *CourseService) AddQuizQuestion(ctx context.Context, instructorUserID, courseID string, req dto.AddQuizQuestionRequest) (*domain.QuizQuestion, error) {
	if _, err := s.ownedCourse(ctx, instructorUserID, courseID); err != nil {
		return nil, err
	}
	if req.CorrectAnswer == nil || *req.CorrectAnswer < 0 || *req.CorrectAnswer > 3 {
		return nil, fmt.Errorf("%w: correctAnswer must be between 0 and 3", apperrors.ErrValidation)
	}

	question := domain.QuizQuestion{
		QuestionID:    uuid.NewString(),
		CourseID:      courseID,
		Question:      req.Question,
		Options:       req.Options,
		CorrectAnswer: *req.CorrectAnswer,
	}
	if err := s.courseRepo.SaveQuizQuestion(ctx, question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *CourseService) ListEnrolledCourses(ctx context.Context, userID string) ([]dto.EnrolledCourseResponse, error) {
	enrollments, err := s.userRepo.ListEnrollmentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]dto.EnrolledCourseResponse, 0, len(enrollments))
	for _, e := range enrollments {
		course, err := s.courseRepo.FindCourseByID(ctx, e.CourseID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		res = append(res, dto.EnrolledCourseResponse{
			Course:      dto.ToCourseResponse(course),
			EnrolledAt:  e.EnrolledAt,
			Completed:   e.Completed,
			CompletedAt: e.CompletedAt,
		})
	}
	return res, nil
}

func (s *CourseService) ownedCourse(ctx context.Context, instructorUserID, courseID string) (*domain.Course, error) {
	course, err := s.courseRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorUserID {
		return nil, fmt.Errorf("%w: course belongs to another instructor", apperrors.ErrForbidden)
	}
	return course, nil
}
