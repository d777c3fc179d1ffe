package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewTransactionID returns a globally unique transaction identifier.
func NewTransactionID() string {
	return "TXN-" + uuid.NewString()
}

// NewCertificateID returns a short human-quotable certificate identifier.
func NewCertificateID() string {
	return "CERT-" + strings.ToUpper(uuid.NewString()[:8])
}
