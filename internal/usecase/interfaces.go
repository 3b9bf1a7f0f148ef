package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountRepository defines data access for accounts. Credit and Debit are the
// balance mutation primitives; they are not transactional across calls, so the
// use case layer serializes the surrounding read-modify-append sequence.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	Credit(ctx context.Context, id string, amount decimal.Decimal) error
	Debit(ctx context.Context, id string, amount decimal.Decimal) error
	Clear(ctx context.Context) error
}

// TransactionRepository defines data access for the append-only transaction log.
type TransactionRepository interface {
	Append(ctx context.Context, txn *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	Clear(ctx context.Context) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
