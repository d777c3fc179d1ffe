package services

import (
	"context"

	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
)

// CertificateService serves issued completion certificates.
type CertificateService struct {
	certRepo portsrepo.CertificateRepository
}

func NewCertificateService(certRepo portsrepo.CertificateRepository) *CertificateService {
	return &CertificateService{certRepo: certRepo}
}

func (s *CertificateService) ListCertificates(ctx context.Context, userID string) ([]domain.Certificate, error) {
	return s.certRepo.ListCertificatesByUser(ctx, userID)
}

func (s *CertificateService) GetCertificateForCourse(ctx context.Context, userID, courseID string) (*domain.Certificate, error) {
	return s.certRepo.FindCertificateByUserAndCourse(ctx, userID, courseID)
}
