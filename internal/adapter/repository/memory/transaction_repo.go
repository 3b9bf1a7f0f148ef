package memory

import (
	"context"
	"sync"

	"github.com/iho/gobank/internal/domain"
)

// TransactionRepository implements usecase.TransactionRepository as an
// append-only log indexed by participant account. A transfer is stored once
// and indexed under both sides.
type TransactionRepository struct {
	mu        sync.RWMutex
	byAccount map[string][]*domain.Transaction
}

// NewTransactionRepository creates a new in-memory TransactionRepository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		byAccount: make(map[string][]*domain.Transaction),
	}
}

// Append records the transaction under every participant account.
func (r *TransactionRepository) Append(ctx context.Context, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *txn
	for _, accountID := range stored.Participants() {
		r.byAccount[accountID] = append(r.byAccount[accountID], &stored)
	}
	return nil
}

// ListByAccount returns the account's records in insertion order. Unknown
// accounts yield an empty slice, never an error.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.byAccount[accountID]
	out := make([]*domain.Transaction, len(records))
	for i, txn := range records {
		snapshot := *txn
		out[i] = &snapshot
	}
	return out, nil
}

// Clear removes all records.
func (r *TransactionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byAccount = make(map[string][]*domain.Transaction)
	return nil
}
