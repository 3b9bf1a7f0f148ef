package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountRepository implements usecase.AccountRepository on a map guarded by
// a RWMutex. Reads return snapshot copies so callers never share mutable
// state with the store.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountRepository creates a new in-memory AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Create stores a copy of the account keyed by its ID.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.ID]; exists {
		return fmt.Errorf("account %s already exists", account.ID)
	}

	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

// GetByID returns a snapshot of the account or ErrAccountNotFound.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}

	snapshot := *account
	return &snapshot, nil
}

// Credit adds amount to the account balance.
func (r *AccountRepository) Credit(ctx context.Context, id string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}

	account.Balance = account.ApplyCredit(amount)
	return nil
}

// Debit subtracts amount from the account balance. The balance never goes
// negative; an uncoverable debit fails with ErrInsufficientFunds.
func (r *AccountRepository) Debit(ctx context.Context, id string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}

	if err := account.ValidateWithdrawal(amount); err != nil {
		return fmt.Errorf("%w: account %s cannot cover %s", err, id, amount.StringFixed(domain.MoneyScale))
	}

	account.Balance = account.ApplyDebit(amount)
	return nil
}

// Clear removes all accounts.
func (r *AccountRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts = make(map[string]*domain.Account)
	return nil
}
