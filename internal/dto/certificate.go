package dto

import (
	"time"

	"github.com/coursebay/lms_backend/internal/core/domain"
)

// CertificateResponse is the public view of a completion certificate.
type CertificateResponse struct {
	CertificateID  string    `json:"certificateId"`
	UserName       string    `json:"userName"`
	CourseTitle    string    `json:"courseTitle"`
	CompletionDate time.Time `json:"completionDate"`
	IssuedDate     time.Time `json:"issuedDate"`
}

// ToCertificateResponse converts a domain.Certificate to its public view.
func ToCertificateResponse(c *domain.Certificate) CertificateResponse {
	return CertificateResponse{
		CertificateID:  c.CertificateID,
		UserName:       c.UserName,
		CourseTitle:    c.CourseTitle,
		CompletionDate: c.CompletionDate,
		IssuedDate:     c.IssuedDate,
	}
}

// ToCertificateResponses converts a slice of certificates.
func ToCertificateResponses(certs []domain.Certificate) []CertificateResponse {
	res := make([]CertificateResponse, len(certs))
	for i := range certs {
		res[i] = ToCertificateResponse(&certs[i])
	}
	return res
}
