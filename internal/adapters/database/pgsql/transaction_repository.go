package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/core/domain"
	portsrepo "github.com/coursebay/lms_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates the repository owning the transaction log
// and the atomic ledger write.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &transactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

const txnColumns = `transaction_id, from_account, to_account, amount, kind, status, course_id, user_id, description, validated, validated_at, created_at`

// SaveLedgerEntries applies balance changes and appends transaction records
// inside one database transaction. Each balance update is conditional on the
// version observed by the caller and on the balance staying non-negative;
// any miss aborts the whole write with ErrConflict.
func (r *transactionRepository) SaveLedgerEntries(ctx context.Context, changes []portsrepo.BalanceChange, transactions []domain.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	updateQuery := `
		UPDATE bank_accounts
		SET balance = balance + $1, version = version + 1, last_updated_at = $2
		WHERE account_number = $3 AND version = $4 AND balance + $1 >= 0;
	`
	now := time.Now()
	for _, change := range changes {
		tag, err := tx.Exec(ctx, updateQuery, change.Delta, now, change.AccountNumber, change.Version)
		if err != nil {
			return fmt.Errorf("failed to apply balance change for %s: %w", change.AccountNumber, err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("account %s changed concurrently: %w", change.AccountNumber, apperrors.ErrConflict)
		}
	}

	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO transactions (` + txnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, txn := range transactions {
		var courseID, userID *string
		if txn.CourseID != "" {
			courseID = &txn.CourseID
		}
		if txn.UserID != "" {
			userID = &txn.UserID
		}
		batch.Queue(insertQuery,
			txn.TransactionID,
			txn.FromAccount,
			txn.ToAccount,
			txn.Amount,
			txn.Kind,
			txn.Status,
			courseID,
			userID,
			txn.Description,
			txn.Validated,
			txn.ValidatedAt,
			txn.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range transactions {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert transaction record: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close transaction batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ledger transaction: %w", err)
	}
	return nil
}

// MarkValidated flips the validated flag exactly once. The conditional
// update is the idempotency guard; no row means either a missing
// transaction or a lost race.
func (r *transactionRepository) MarkValidated(ctx context.Context, transactionID string, at time.Time) error {
	query := `
		UPDATE transactions
		SET validated = TRUE, validated_at = $2, status = $3
		WHERE transaction_id = $1 AND validated = FALSE;
	`
	tag, err := r.pool.Exec(ctx, query, transactionID, at, domain.StatusValidated)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s validated: %w", transactionID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1);`, transactionID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check transaction %s: %w", transactionID, err)
	}
	if !exists {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return fmt.Errorf("transaction %s already validated: %w", transactionID, apperrors.ErrConflict)
}

func (r *transactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + txnColumns + ` FROM transactions`)

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.AccountNumber != "" {
		p := arg(filter.AccountNumber)
		conds = append(conds, fmt.Sprintf("(from_account = %s OR to_account = %s)", p, p))
	}
	if filter.Kind != "" {
		conds = append(conds, "kind = "+arg(filter.Kind))
	}
	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		conds = append(conds, "kind = ANY("+arg(kinds)+")")
	}
	if len(filter.CourseIDs) > 0 {
		conds = append(conds, "course_id = ANY("+arg(filter.CourseIDs)+")")
	}
	if filter.UserID != "" {
		conds = append(conds, "user_id = "+arg(filter.UserID))
	}
	if filter.OnlyUnvalidated {
		conds = append(conds, "validated = FALSE")
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, transaction_id DESC")
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(filter.Limit))
	}
	sb.WriteString(";")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading transaction rows: %w", err)
	}
	return txns, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var courseID, userID *string
	err := row.Scan(
		&txn.TransactionID,
		&txn.FromAccount,
		&txn.ToAccount,
		&txn.Amount,
		&txn.Kind,
		&txn.Status,
		&courseID,
		&userID,
		&txn.Description,
		&txn.Validated,
		&txn.ValidatedAt,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if courseID != nil {
		txn.CourseID = *courseID
	}
	if userID != nil {
		txn.UserID = *userID
	}
	return &txn, nil
}
