package dto

import (
	"time"

	"github.com/coursebay/lms_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest is the payload for bank setup.
type CreateBankAccountRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required"`
	Secret        string `json:"secret" binding:"required,min=4"`
}

// BankAccountResponse is the public view of a bank account. The secret hash
// never leaves the service.
type BankAccountResponse struct {
	AccountNumber string          `json:"accountNumber"`
	HolderName    string          `json:"accountHolderName"`
	Balance       decimal.Decimal `json:"balance"`
	AccountType   string          `json:"accountType"`
}

// ToBankAccountResponse converts a domain.Account to its public view.
func ToBankAccountResponse(a *domain.Account) BankAccountResponse {
	return BankAccountResponse{
		AccountNumber: a.AccountNumber,
		HolderName:    a.HolderName,
		Balance:       a.Balance,
		AccountType:   string(a.AccountType),
	}
}

// TransferRequest is the payload for a direct account-to-account transfer.
type TransferRequest struct {
	FromAccount string          `json:"fromAccount" binding:"required"`
	ToAccount   string          `json:"toAccount" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Secret      string          `json:"secret" binding:"required"`
	Kind        string          `json:"type" binding:"omitempty,oneof=course_purchase instructor_payment course_upload_payment platform_commission"`
	CourseID    string          `json:"courseId"`
	Description string          `json:"description"`
}

// TransferResult reports a completed transfer.
type TransferResult struct {
	Transaction TransactionResponse `json:"transaction"`
	NewBalance  decimal.Decimal     `json:"newBalance"`
}

// PurchaseCourseRequest is the payload for a course purchase.
type PurchaseCourseRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// PurchaseResult reports a completed course purchase.
type PurchaseResult struct {
	NewBalance  decimal.Decimal     `json:"newBalance"`
	Transaction TransactionResponse `json:"transaction"`
}

// ValidatePaymentRequest is the payload for collecting an instructor payment.
type ValidatePaymentRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// ValidatePaymentResult reports a validated instructor payment.
type ValidatePaymentResult struct {
	Payment    decimal.Decimal `json:"payment"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// TransactionResponse is the public view of a ledger transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionId"`
	FromAccount   string          `json:"fromAccount"`
	ToAccount     string          `json:"toAccount"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"type"`
	Status        string          `json:"status"`
	CourseID      string          `json:"courseId,omitempty"`
	UserID        string          `json:"userId,omitempty"`
	Description   string          `json:"description,omitempty"`
	Validated     bool            `json:"validated"`
	ValidatedAt   *time.Time      `json:"validatedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its public view.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		FromAccount:   t.FromAccount,
		ToAccount:     t.ToAccount,
		Amount:        t.Amount,
		Kind:          string(t.Kind),
		Status:        string(t.Status),
		CourseID:      t.CourseID,
		UserID:        t.UserID,
		Description:   t.Description,
		Validated:     t.Validated,
		ValidatedAt:   t.ValidatedAt,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
