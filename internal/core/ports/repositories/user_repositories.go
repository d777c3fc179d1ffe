package repositories

import (
	"context"
	"time"

	"github.com/coursebay/lms_backend/internal/core/domain"
)

// UserReader defines read operations for user profiles.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsersByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	CountUsersByRole(ctx context.Context, role domain.UserRole) (int, error)
}

// UserWriter defines write operations for user profiles.
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate on a
	// taken email address.
	SaveUser(ctx context.Context, user domain.User) error

	// SetBankAccountNumber links a ledger account onto the user profile.
	SetBankAccountNumber(ctx context.Context, userID string, accountNumber string) error
}

// EnrollmentRepository holds the learner enrollment list, which the ledger
// reads and writes through rather than owning.
type EnrollmentRepository interface {
	SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error
	FindEnrollment(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
	ListEnrollmentsByUser(ctx context.Context, userID string) ([]domain.Enrollment, error)
	ListEnrollmentsByCourse(ctx context.Context, courseID string) ([]domain.Enrollment, error)
	MarkEnrollmentCompleted(ctx context.Context, userID, courseID string, at time.Time) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	EnrollmentRepository
}
