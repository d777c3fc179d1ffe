package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies the economic purpose of a ledger entry.
type TransactionKind string

const (
	CoursePurchase      TransactionKind = "course_purchase"
	InstructorPayment   TransactionKind = "instructor_payment"
	CourseUploadPayment TransactionKind = "course_upload_payment"
	PlatformCommission  TransactionKind = "platform_commission"
)

// TransactionStatus tracks the lifecycle of a transaction record.
// Transitions are one-directional: pending/completed may become validated,
// nothing ever moves back.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusValidated TransactionStatus = "validated"
)

// Transaction is an immutable record of a balance movement between two
// accounts. Once written, only the validated/validatedAt/status fields may
// change, and only through MarkValidated.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	FromAccount   string            `json:"fromAccount"`
	ToAccount     string            `json:"toAccount"`
	Amount        decimal.Decimal   `json:"amount"`
	Kind          TransactionKind   `json:"kind"`
	Status        TransactionStatus `json:"status"`
	CourseID      string            `json:"courseID,omitempty"`
	UserID        string            `json:"userID,omitempty"`
	Description   string            `json:"description,omitempty"`
	Validated     bool              `json:"validated"`
	ValidatedAt   *time.Time        `json:"validatedAt,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}
