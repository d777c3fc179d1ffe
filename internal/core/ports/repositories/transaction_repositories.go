package repositories

import (
	"context"
	"time"

	"github.com/coursebay/lms_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceChange is one account mutation within an atomic ledger write. The
// Version is the version observed when the precondition checks ran; the
// write fails with apperrors.ErrConflict if another writer got there first.
type BalanceChange struct {
	AccountNumber string
	Delta         decimal.Decimal // signed; negative for debits
	Version       int64
}

// TransactionFilter narrows a transaction history query. Zero values mean
// "no constraint". Results are always newest-first.
type TransactionFilter struct {
	AccountNumber   string // matches either leg
	Kind            domain.TransactionKind
	Kinds           []domain.TransactionKind
	CourseIDs       []string
	UserID          string
	OnlyUnvalidated bool
	Limit           int
}

// TransactionReader defines read operations for transaction records.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
}

// LedgerWriter owns the append-only transaction log and the only path that
// mutates balances. All changes and records passed to SaveLedgerEntries are
// applied inside a single database transaction.
type LedgerWriter interface {
	// SaveLedgerEntries applies the balance changes and appends the
	// transaction records atomically.
	SaveLedgerEntries(ctx context.Context, changes []BalanceChange, transactions []domain.Transaction) error

	// MarkValidated flips a transaction to validated exactly once. Returns
	// apperrors.ErrConflict if the transaction was already validated.
	MarkValidated(ctx context.Context, transactionID string, at time.Time) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	LedgerWriter
}
