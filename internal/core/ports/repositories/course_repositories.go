package repositories

import (
	"context"

	"github.com/coursebay/lms_backend/internal/core/domain"
)

// CourseReader defines read operations for the course catalog.
type CourseReader interface {
	FindCourseByID(ctx context.Context, courseID string) (*domain.Course, error)
	ListActiveCourses(ctx context.Context) ([]domain.Course, error)
	ListAllCourses(ctx context.Context) ([]domain.Course, error)
	ListCoursesByInstructor(ctx context.Context, instructorID string) ([]domain.Course, error)
	CountActiveCourses(ctx context.Context) (int, error)
	CountCourses(ctx context.Context) (int, error)

	// FindCourseByInstructorAndTitle does a case-insensitive exact title
	// match scoped to one instructor.
	FindCourseByInstructorAndTitle(ctx context.Context, instructorID, title string) (*domain.Course, error)
}

// CourseWriter defines write operations for the course catalog.
type CourseWriter interface {
	SaveCourse(ctx context.Context, course domain.Course) error
	UpdateCourse(ctx context.Context, course domain.Course) error
	SaveMaterial(ctx context.Context, material domain.Material) error
	ListMaterialsByCourse(ctx context.Context, courseID string) ([]domain.Material, error)
	SaveQuizQuestion(ctx context.Context, question domain.QuizQuestion) error
	ListQuizQuestionsByCourse(ctx context.Context, courseID string) ([]domain.QuizQuestion, error)
}

// CourseRepositoryFacade combines all course repository interfaces.
type CourseRepositoryFacade interface {
	CourseReader
	CourseWriter
}
