package dto

import (
	"time"

	"github.com/coursebay/lms_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCourseRequest is the payload for an instructor course upload.
type CreateCourseRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Category    string          `json:"category"`
	Duration    string          `json:"duration"`
	Thumbnail   string          `json:"thumbnail"`
}

// UpdateCourseRequest carries optional course edits; nil fields are left as-is.
type UpdateCourseRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Duration    *string          `json:"duration"`
	IsActive    *bool            `json:"isActive"`
}

// CourseResponse is the public view of a course.
type CourseResponse struct {
	CourseID       string          `json:"courseID"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	InstructorID   string          `json:"instructorID"`
	InstructorName string          `json:"instructorName"`
	Category       string          `json:"category"`
	Duration       string          `json:"duration"`
	Thumbnail      string          `json:"thumbnail,omitempty"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToCourseResponse converts a domain.Course to its public view.
func ToCourseResponse(c *domain.Course) CourseResponse {
	return CourseResponse{
		CourseID:       c.CourseID,
		Title:          c.Title,
		Description:    c.Description,
		Price:          c.Price,
		InstructorID:   c.InstructorID,
		InstructorName: c.InstructorName,
		Category:       c.Category,
		Duration:       c.Duration,
		Thumbnail:      c.Thumbnail,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

// ToCourseResponses converts a slice of courses.
func ToCourseResponses(courses []domain.Course) []CourseResponse {
	res := make([]CourseResponse, len(courses))
	for i := range courses {
		res[i] = ToCourseResponse(&courses[i])
	}
	return res
}

// UploadCourseResult reports a created course plus the upload payment, if the
// platform could pay it immediately.
type UploadCourseResult struct {
	Course  CourseResponse       `json:"course"`
	Payment *TransactionResponse `json:"payment,omitempty"`

	// PaymentPending is set when the platform balance could not cover the
	// upload reward and the transaction was recorded as pending instead.
	PaymentPending bool `json:"paymentPending"`
}

// AddMaterialRequest attaches one piece of content metadata to a course.
type AddMaterialRequest struct {
	Kind        string `json:"type" binding:"required,oneof=text audio video pdf"`
	Title       string `json:"title" binding:"required"`
	ContentURL  string `json:"content" binding:"required"`
	Description string `json:"description"`
}

// MaterialResponse is the public view of course material metadata.
type MaterialResponse struct {
	MaterialID  string    `json:"materialID"`
	Kind        string    `json:"type"`
	Title       string    `json:"title"`
	ContentURL  string    `json:"content"`
	Description string    `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// ToMaterialResponse converts a domain.Material to its public view.
func ToMaterialResponse(m *domain.Material) MaterialResponse {
	return MaterialResponse{
		MaterialID:  m.MaterialID,
		Kind:        string(m.Kind),
		Title:       m.Title,
		ContentURL:  m.ContentURL,
		Description: m.Description,
		UploadedAt:  m.UploadedAt,
	}
}

// AddQuizQuestionRequest attaches one multiple-choice question to a course.
type AddQuizQuestionRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,len=4"`
	CorrectAnswer *int     `json:"correctAnswer" binding:"required"`
}

// EnrolledCourseResponse is one entry in a learner's course list.
type EnrolledCourseResponse struct {
	Course      CourseResponse `json:"course"`
	EnrolledAt  time.Time      `json:"enrolledAt"`
	Completed   bool           `json:"completed"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

// EnrolledStudentResponse is one row in an instructor's student listing.
type EnrolledStudentResponse struct {
	StudentName  string    `json:"studentName"`
	StudentEmail string    `json:"studentEmail"`
	CourseTitle  string    `json:"courseTitle"`
	EnrolledAt   time.Time `json:"enrolledAt"`
	Completed    bool      `json:"completed"`
}
