package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of money movement a record describes.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTransfer   TransactionType = "TRANSFER"
)

// Transaction is an immutable record of a money movement. It references
// participant accounts by id only; FromAccountID is empty for deposits and
// ToAccountID is empty for withdrawals.
type Transaction struct {
	CreatedAt     time.Time
	ID            string
	FromAccountID string
	ToAccountID   string
	Description   string
	Type          TransactionType
	Amount        decimal.Decimal
}

// Participants returns the non-empty account ids the record references.
// A transfer lists both sides, single-leg operations list one.
func (t *Transaction) Participants() []string {
	ids := make([]string, 0, 2)
	if t.FromAccountID != "" {
		ids = append(ids, t.FromAccountID)
	}

	if t.ToAccountID != "" && t.ToAccountID != t.FromAccountID {
		ids = append(ids, t.ToAccountID)
	}

	return ids
}
