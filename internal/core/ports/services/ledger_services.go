package services

import (
	"context"

	"github.com/coursebay/lms_backend/internal/core/domain"
	"github.com/coursebay/lms_backend/internal/dto"
)

// LedgerSvcFacade is the internal ledger: accounts, transfers, the purchase
// revenue split, and instructor-payment validation.
type LedgerSvcFacade interface {
	// EnsurePlatformAccount idempotently creates the single platform account
	// configured for the process. Called once at startup.
	EnsurePlatformAccount(ctx context.Context) error

	// CreateBankAccount performs bank setup for a user and links the account
	// number onto the user profile.
	CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.Account, error)

	// GetAccountForUser resolves a user's bank account via their profile.
	GetAccountForUser(ctx context.Context, userID string) (*domain.Account, error)

	// GetPlatformBalance returns the platform account balance.
	GetPlatformBalance(ctx context.Context) (*domain.Account, error)

	// Transfer moves an amount between two accounts, authenticated by the
	// source account's secret, and records one completed transaction.
	Transfer(ctx context.Context, callerUserID string, req dto.TransferRequest) (*dto.TransferResult, error)

	// PurchaseCourse executes a course purchase as one economic event:
	// learner pays the price, the instructor and the platform each receive
	// their share, three transactions are recorded, and the learner is
	// enrolled.
	PurchaseCourse(ctx context.Context, learnerUserID, courseID, secret string) (*dto.PurchaseResult, error)

	// ValidatePayment acknowledges an instructor-payment transaction exactly
	// once. Funds moved at purchase time; no balance changes here.
	ValidatePayment(ctx context.Context, transactionID, instructorUserID, secret string) (*dto.ValidatePaymentResult, error)

	// PayCourseUploadReward pays the configured upload reward from the
	// platform to the instructor. If the platform balance cannot cover it
	// the transaction is recorded as pending and no balances change.
	PayCourseUploadReward(ctx context.Context, instructor *domain.User, course *domain.Course) (*domain.Transaction, error)

	// ListTransactionsForUser returns the transaction history touching the
	// user's account, newest first.
	ListTransactionsForUser(ctx context.Context, userID string) ([]domain.Transaction, error)
}
