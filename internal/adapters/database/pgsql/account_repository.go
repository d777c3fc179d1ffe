package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository for bank account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &accountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

const accountColumns = `account_number, user_id, holder_name, balance, secret_hash, account_type, version, created_at, created_by, last_updated_at, last_updated_by`

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO bank_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	// The platform account carries no owning user.
	var userID *string
	if account.UserID != "" {
		userID = &account.UserID
	}

	_, err := r.pool.Exec(ctx, query,
		account.AccountNumber,
		userID,
		account.HolderName,
		account.Balance,
		account.SecretHash,
		account.AccountType,
		account.Version,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("account number %s: %w", account.AccountNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountNumber, err)
	}
	return nil
}

func (r *accountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE account_number = $1;`

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", accountNumber, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountNumber, err)
	}
	return acc, nil
}

func (r *accountRepository) FindAccountsByNumbers(ctx context.Context, accountNumbers []string) (map[string]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE account_number = ANY($1);`

	rows, err := r.pool.Query(ctx, query, accountNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountNumbers))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[acc.AccountNumber] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading account rows: %w", err)
	}
	return accounts, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	var userID *string
	err := row.Scan(
		&acc.AccountNumber,
		&userID,
		&acc.HolderName,
		&acc.Balance,
		&acc.SecretHash,
		&acc.AccountType,
		&acc.Version,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		acc.UserID = *userID
	}
	return &acc, nil
}
