package repositories

import (
	"context"

	"github.com/coursebay/lms_backend/internal/core/domain"
)

// CertificateRepository stores issued course-completion certificates.
type CertificateRepository interface {
	SaveCertificate(ctx context.Context, cert domain.Certificate) error
	FindCertificateByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Certificate, error)
	ListCertificatesByUser(ctx context.Context, userID string) ([]domain.Certificate, error)
}
