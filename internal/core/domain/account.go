package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a bank account by the party holding it.
type AccountType string

const (
	UserAccount       AccountType = "user"
	InstructorAccount AccountType = "instructor"
	PlatformAccount   AccountType = "platform"
)

// Account represents a simulated bank account in the internal ledger.
// The balance is only ever mutated through transfer/split operations;
// Version backs the optimistic-concurrency check on those mutations.
type Account struct {
	AccountNumber string          `json:"accountNumber"`
	UserID        string          `json:"userID,omitempty"` // empty for the platform account
	HolderName    string          `json:"holderName"`
	Balance       decimal.Decimal `json:"balance"`
	SecretHash    string          `json:"-"`
	AccountType   AccountType     `json:"accountType"`
	Version       int64           `json:"-"`
	AuditFields
}
