package services

import (
	"context"

	"github.com/coursebay/lms_backend/internal/core/domain"
)

// CertificateSvcFacade serves issued completion certificates.
type CertificateSvcFacade interface {
	// ListCertificates returns all certificates held by a user.
	ListCertificates(ctx context.Context, userID string) ([]domain.Certificate, error)

	// GetCertificateForCourse returns the user's certificate for one course.
	GetCertificateForCourse(ctx context.Context, userID, courseID string) (*domain.Certificate, error)
}
