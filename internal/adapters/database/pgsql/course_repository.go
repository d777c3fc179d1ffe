package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new repository for courses, materials and
// quiz questions.
func NewCourseRepository(pool *pgxpool.Pool) portsrepo.CourseRepositoryFacade {
	return &courseRepository{pool: pool}
}

var _ portsrepo.CourseRepositoryFacade = (*courseRepository)(nil)

const courseColumns = `course_id, title, description, price, instructor_id, instructor_name, category, duration, thumbnail, is_active, created_at, created_by, last_updated_at, last_updated_by`

func (r *courseRepository) SaveCourse(ctx context.Context, course domain.Course) error {
	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.pool.Exec(ctx, query,
		course.CourseID,
		course.Title,
		course.Description,
		course.Price,
		course.InstructorID,
		course.InstructorName,
		course.Category,
		course.Duration,
		course.Thumbnail,
		course.IsActive,
		course.CreatedAt,
		course.CreatedBy,
		course.LastUpdatedAt,
		course.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save course %s: %w", course.CourseID, err)
	}
	return nil
}

func (r *courseRepository) UpdateCourse(ctx context.Context, course domain.Course) error {
	query := `
		UPDATE courses
		SET title = $2, description = $3, price = $4, category = $5, duration = $6,
		    thumbnail = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE course_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		course.CourseID,
		course.Title,
		course.Description,
		course.Price,
		course.Category,
		course.Duration,
		course.Thumbnail,
		course.IsActive,
		course.LastUpdatedAt,
		course.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update course %s: %w", course.CourseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("course %s: %w", course.CourseID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *courseRepository) FindCourseByID(ctx context.Context, courseID string) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE course_id = $1;`

	course, err := scanCourse(r.pool.QueryRow(ctx, query, courseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("course %s: %w", courseID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find course %s: %w", courseID, err)
	}
	return course, nil
}

func (r *courseRepository) FindCourseByInstructorAndTitle(ctx context.Context, instructorID, title string) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE instructor_id = $1 AND LOWER(title) = LOWER($2);`

	course, err := scanCourse(r.pool.QueryRow(ctx, query, instructorID, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("course: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find course by title: %w", err)
	}
	return course, nil
}

func (r *courseRepository) ListActiveCourses(ctx context.Context) ([]domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE is_active = TRUE ORDER BY created_at DESC;`
	return r.listCourses(ctx, query)
}

func (r *courseRepository) ListAllCourses(ctx context.Context) ([]domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC;`
	return r.listCourses(ctx, query)
}

func (r *courseRepository) ListCoursesByInstructor(ctx context.Context, instructorID string) ([]domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE instructor_id = $1 ORDER BY created_at DESC;`
	return r.listCourses(ctx, query, instructorID)
}

func (r *courseRepository) listCourses(ctx context.Context, query string, args ...any) ([]domain.Course, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]domain.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, *course)
	}
	return courses, rows.Err()
}

func (r *courseRepository) CountActiveCourses(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses WHERE is_active = TRUE;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active courses: %w", err)
	}
	return count, nil
}

func (r *courseRepository) CountCourses(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return count, nil
}

func (r *courseRepository) SaveMaterial(ctx context.Context, material domain.Material) error {
	query := `
		INSERT INTO course_materials (material_id, course_id, kind, title, content_url, description, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		material.MaterialID,
		material.CourseID,
		material.Kind,
		material.Title,
		material.ContentURL,
		material.Description,
		material.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save material %s: %w", material.MaterialID, err)
	}
	return nil
}

func (r *courseRepository) ListMaterialsByCourse(ctx context.Context, courseID string) ([]domain.Material, error) {
	query := `
		SELECT material_id, course_id, kind, title, content_url, description, uploaded_at
		FROM course_materials WHERE course_id = $1 ORDER BY uploaded_at;
	`
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]domain.Material, 0)
	for rows.Next() {
		var m domain.Material
		if err := rows.Scan(&m.MaterialID, &m.CourseID, &m.Kind, &m.Title, &m.ContentURL, &m.Description, &m.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan material row: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (r *courseRepository) SaveQuizQuestion(ctx context.Context, question domain.QuizQuestion) error {
	query := `
		INSERT INTO quiz_questions (question_id, course_id, question, options, correct_answer)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.pool.Exec(ctx, query,
		question.QuestionID,
		question.CourseID,
		question.Question,
		question.Options,
		question.CorrectAnswer,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz question %s: %w", question.QuestionID, err)
	}
	return nil
}

func (r *courseRepository) ListQuizQuestionsByCourse(ctx context.Context, courseID string) ([]domain.QuizQuestion, error) {
	query := `
		SELECT question_id, course_id, question, options, correct_answer
		FROM quiz_questions WHERE course_id = $1;
	`
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz questions: %w", err)
	}
	defer rows.Close()

	questions := make([]domain.QuizQuestion, 0)
	for rows.Next() {
		var q domain.QuizQuestion
		if err := rows.Scan(&q.QuestionID, &q.CourseID, &q.Question, &q.Options, &q.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("failed to scan quiz question row: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var c domain.Course
	err := row.Scan(
		&c.CourseID,
		&c.Title,
		&c.Description,
		&c.Price,
		&c.InstructorID,
		&c.InstructorName,
		&c.Category,
		&c.Duration,
		&c.Thumbnail,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
