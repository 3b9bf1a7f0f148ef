package mocks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// MockAccountRepository is a mock implementation of usecase.AccountRepository.
// By default it behaves like the real in-memory store; individual methods can
// be overridden through the Func fields.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc  func(ctx context.Context, account *domain.Account) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Account, error)
	CreditFunc  func(ctx context.Context, id string, amount decimal.Decimal) error
	DebitFunc   func(ctx context.Context, id string, amount decimal.Decimal) error
	ClearFunc   func(ctx context.Context) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *account
	m.accounts[account.ID] = &stored
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		snapshot := *acc
		return &snapshot, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
}

func (m *MockAccountRepository) Credit(ctx context.Context, id string, amount decimal.Decimal) error {
	if m.CreditFunc != nil {
		return m.CreditFunc(ctx, id, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}
	acc.Balance = acc.Balance.Add(amount)
	return nil
}

func (m *MockAccountRepository) Debit(ctx context.Context, id string, amount decimal.Decimal) error {
	if m.DebitFunc != nil {
		return m.DebitFunc(ctx, id, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}
	if acc.Balance.LessThan(amount) {
		return fmt.Errorf("%w: account %s cannot cover %s", domain.ErrInsufficientFunds, id, amount.StringFixed(domain.MoneyScale))
	}
	acc.Balance = acc.Balance.Sub(amount)
	return nil
}

func (m *MockAccountRepository) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = make(map[string]*domain.Account)
	return nil
}

// MockTransactionRepository is a mock implementation of
// usecase.TransactionRepository with the same Func-override pattern.
type MockTransactionRepository struct {
	mu        sync.RWMutex
	byAccount map[string][]*domain.Transaction
	appended  int

	AppendFunc        func(ctx context.Context, txn *domain.Transaction) error
	ListByAccountFunc func(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	ClearFunc         func(ctx context.Context) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		byAccount: make(map[string][]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Append(ctx context.Context, txn *domain.Transaction) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range txn.Participants() {
		m.byAccount[id] = append(m.byAccount[id], txn)
	}
	m.appended++
	return nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Transaction(nil), m.byAccount[accountID]...), nil
}

func (m *MockTransactionRepository) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byAccount = make(map[string][]*domain.Transaction)
	m.appended = 0
	return nil
}

// AppendCount reports how many records were appended through the default path.
func (m *MockTransactionRepository) AppendCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.appended
}

// MockIDGenerator is a mock implementation of usecase.IDGenerator. It returns
// sequential ids unless GenerateFunc is set.
type MockIDGenerator struct {
	counter atomic.Int64

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return fmt.Sprintf("id-%d", m.counter.Add(1))
}
