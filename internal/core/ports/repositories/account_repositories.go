package repositories

import (
	"context"

	"github.com/coursebay/lms_backend/internal/core/domain"
)

// AccountReader defines read operations for ledger accounts.
type AccountReader interface {
	// FindAccountByNumber retrieves an account by its account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByNumbers retrieves multiple accounts keyed by account number.
	FindAccountsByNumbers(ctx context.Context, accountNumbers []string) (map[string]domain.Account, error)
}

// AccountWriter defines write operations for ledger accounts. Balances are
// never written through this interface; they change only through
// LedgerWriter.SaveLedgerEntries.
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate if
	// the account number is already taken.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
