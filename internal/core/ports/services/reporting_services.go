package services

import (
	"context"

	"github.com/coursebay/lms_backend/internal/core/domain"
	"github.com/coursebay/lms_backend/internal/dto"
)

// ReportingSvcFacade produces the admin and instructor dashboards.
type ReportingSvcFacade interface {
	// PlatformStats aggregates platform-wide counts and the platform balance.
	PlatformStats(ctx context.Context) (*dto.PlatformStats, error)

	// AdminTransactions returns the recent transaction feed with revenue
	// aggregates, optionally filtered by kind.
	AdminTransactions(ctx context.Context, kind domain.TransactionKind, limit int) (*dto.AdminTransactionsResult, error)

	// InstructorEarnings summarizes an instructor's upload and course
	// payments plus their current balance.
	InstructorEarnings(ctx context.Context, instructorUserID string) (*dto.EarningsResult, error)

	// PendingInstructorPayments lists unvalidated instructor-payment
	// transactions across the instructor's courses.
	PendingInstructorPayments(ctx context.Context, instructorUserID string) ([]domain.Transaction, error)

	// ListStudents flattens enrollment rows across the instructor's courses.
	ListStudents(ctx context.Context, instructorUserID string) ([]dto.EnrolledStudentResponse, error)
}
