package services

import (
	"context"

	"github.com/coursebay/lms_backend/internal/core/domain"
	"github.com/coursebay/lms_backend/internal/dto"
)

// CourseSvcFacade manages the course catalog, materials, quiz content and
// learner enrollment views.
type CourseSvcFacade interface {
	// UploadCourse creates a course for an instructor, enforcing the active
	// course cap and per-instructor title uniqueness, then triggers the
	// upload reward. The returned transaction may be nil when the
	// instructor has no payable reward recorded.
	UploadCourse(ctx context.Context, instructorUserID string, req dto.CreateCourseRequest) (*domain.Course, *domain.Transaction, error)

	// GetCourse fetches a single course.
	GetCourse(ctx context.Context, courseID string) (*domain.Course, error)

	// ListActiveCourses lists courses visible on the marketplace.
	ListActiveCourses(ctx context.Context) ([]domain.Course, error)

	// ListAllCourses lists every course, active or not.
	ListAllCourses(ctx context.Context) ([]domain.Course, error)

	// ListCoursesByInstructor lists an instructor's own courses.
	ListCoursesByInstructor(ctx context.Context, instructorUserID string) ([]domain.Course, error)

	// UpdateCourse applies edits to a course owned by the instructor.
	UpdateCourse(ctx context.Context, instructorUserID, courseID string, req dto.UpdateCourseRequest) (*domain.Course, error)

	// AddMaterial attaches content metadata to an owned course.
	AddMaterial(ctx context.Context, instructorUserID, courseID string, req dto.AddMaterialRequest) (*domain.Material, error)

	// ListMaterials lists course content for an enrolled learner or the
	// owning instructor.
	ListMaterials(ctx context.Context, callerUserID, courseID string) ([]domain.Material, error)

	// AddQuizQuestion attaches a question to an owned course.
	AddQuizQuestion(ctx context.Context, instructorUserID, courseID string, req dto.AddQuizQuestionRequest) (*domain.QuizQuestion, error)

	// ListEnrolledCourses returns a learner's course list with enrollment
	// status.
	ListEnrolledCourses(ctx context.Context, userID string) ([]dto.EnrolledCourseResponse, error)
}
