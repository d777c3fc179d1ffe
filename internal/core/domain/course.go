package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialKind classifies a piece of course material.
type MaterialKind string

const (
	MaterialText  MaterialKind = "text"
	MaterialAudio MaterialKind = "audio"
	MaterialVideo MaterialKind = "video"
	MaterialPDF   MaterialKind = "pdf"
)

// Course is a purchasable course listed on the marketplace.
type Course struct {
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
	AuditFields
}

// Material is metadata for one piece of course content. The content itself
// lives with an external storage provider; only the URL is kept here.
type Material struct {
	MaterialID  string       `json:"materialID"`
	CourseID    string       `json:"courseID"`
	Kind        MaterialKind `json:"kind"`
	Title       string       `json:"title"`
	ContentURL  string       `json:"contentURL"`
	Description string       `json:"description,omitempty"`
	UploadedAt  time.Time    `json:"uploadedAt"`
}
