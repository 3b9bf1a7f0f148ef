package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// LedgerUseCase orchestrates money movements: it resolves accounts, mutates
// balances and appends transaction records. Every mutating operation holds the
// per-account locks for the whole read-modify-append sequence, so either both
// balances of a transfer move or neither does.
type LedgerUseCase struct {
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
	locks       *accountLocks

	// resetMu makes Reset mutually exclusive with in-flight mutations.
	resetMu sync.RWMutex
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		metrics:     m,
		locks:       newAccountLocks(),
	}
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	ToAccountID string
	Amount      decimal.Decimal
	Description string
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	FromAccountID string
	Amount        decimal.Decimal
	Description   string
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
}

// Deposit credits an account and records a DEPOSIT transaction.
func (uc *LedgerUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	start := time.Now()

	amount, err := domain.NormalizePositiveAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	uc.resetMu.RLock()
	defer uc.resetMu.RUnlock()

	release := uc.locks.Acquire(input.ToAccountID)
	defer release()

	if _, err := uc.accountRepo.GetByID(ctx, input.ToAccountID); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Credit(ctx, input.ToAccountID, amount); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		ToAccountID: input.ToAccountID,
		Amount:      amount,
		Type:        domain.TransactionDeposit,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.txnRepo.Append(ctx, txn); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Deposits.Inc()
		uc.metrics.OperationDuration.WithLabelValues("deposit").Observe(time.Since(start).Seconds())
	}

	log.Info().
		Str("transaction_id", txn.ID).
		Str("account_id", input.ToAccountID).
		Str("amount", amount.StringFixed(domain.MoneyScale)).
		Msg("deposit successful")

	return txn, nil
}

// Withdraw debits an account and records a WITHDRAWAL transaction. The balance
// is left untouched when funds are insufficient.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
	start := time.Now()

	amount, err := domain.NormalizePositiveAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	uc.resetMu.RLock()
	defer uc.resetMu.RUnlock()

	release := uc.locks.Acquire(input.FromAccountID)
	defer release()

	if _, err := uc.accountRepo.GetByID(ctx, input.FromAccountID); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Debit(ctx, input.FromAccountID, amount); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		FromAccountID: input.FromAccountID,
		Amount:        amount,
		Type:          domain.TransactionWithdrawal,
		Description:   input.Description,
		CreatedAt:     time.Now().UTC(),
	}

	if err := uc.txnRepo.Append(ctx, txn); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Withdrawals.Inc()
		uc.metrics.OperationDuration.WithLabelValues("withdraw").Observe(time.Since(start).Seconds())
	}

	log.Info().
		Str("transaction_id", txn.ID).
		Str("account_id", input.FromAccountID).
		Str("amount", amount.StringFixed(domain.MoneyScale)).
		Msg("withdrawal successful")

	return txn, nil
}

// Transfer moves amount between two accounts as an all-or-nothing operation.
// If the second leg fails after the withdrawal, the withdrawn amount is
// credited back before the error surfaces; no record is written for any
// failure path.
func (uc *LedgerUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	start := time.Now()

	txn, err := uc.transfer(ctx, input)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.TransferErrors.WithLabelValues(errorType(err)).Inc()
		}

		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.TransferAmount.Observe(txn.Amount.InexactFloat64())
		uc.metrics.OperationDuration.WithLabelValues("transfer").Observe(time.Since(start).Seconds())
	}

	return txn, nil
}

func (uc *LedgerUseCase) transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	// 1. Validate amount precision and sign before touching any state
	amount, err := domain.NormalizePositiveAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	// 2. Self-transfer is rejected, not a no-op
	if input.FromAccountID == input.ToAccountID {
		return nil, fmt.Errorf("%w: %s", domain.ErrSameAccount, input.FromAccountID)
	}

	uc.resetMu.RLock()
	defer uc.resetMu.RUnlock()

	// 3. Lock both accounts for the whole sequence, compensation included
	release := uc.locks.Acquire(input.FromAccountID, input.ToAccountID)
	defer release()

	// 4. Resolve both accounts before any mutation
	if _, err := uc.accountRepo.GetByID(ctx, input.FromAccountID); err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.ToAccountID); err != nil {
		return nil, err
	}

	// 5. Withdraw from the source; insufficient funds leaves state unchanged
	if err := uc.accountRepo.Debit(ctx, input.FromAccountID, amount); err != nil {
		return nil, err
	}

	// 6. Deposit into the destination, compensating the withdrawal on failure
	if err := uc.accountRepo.Credit(ctx, input.ToAccountID, amount); err != nil {
		log.Error().
			Err(err).
			Str("from_account_id", input.FromAccountID).
			Str("to_account_id", input.ToAccountID).
			Msg("deposit leg failed, rolling back withdrawal")

		if compErr := uc.accountRepo.Credit(ctx, input.FromAccountID, amount); compErr != nil {
			log.Error().
				Err(compErr).
				Str("account_id", input.FromAccountID).
				Msg("compensating credit failed")
		}

		return nil, fmt.Errorf("%w: could not deposit into account %s", domain.ErrTransferFailed, input.ToAccountID)
	}

	// 7. Record the transfer only after both balances moved
	txn := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        amount,
		Type:          domain.TransactionTransfer,
		Description:   input.Description,
		CreatedAt:     time.Now().UTC(),
	}

	if err := uc.txnRepo.Append(ctx, txn); err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", txn.ID).
		Str("from_account_id", input.FromAccountID).
		Str("to_account_id", input.ToAccountID).
		Str("amount", amount.StringFixed(domain.MoneyScale)).
		Msg("transfer successful")

	return txn, nil
}

// GetHistory returns all transactions an account participates in, oldest
// first. The account must exist; an account without transactions yields an
// empty slice.
func (uc *LedgerUseCase) GetHistory(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return uc.txnRepo.ListByAccount(ctx, accountID)
}

// Reset clears both stores. Used for test isolation only.
func (uc *LedgerUseCase) Reset(ctx context.Context) error {
	uc.resetMu.Lock()
	defer uc.resetMu.Unlock()

	if err := uc.accountRepo.Clear(ctx); err != nil {
		return err
	}

	return uc.txnRepo.Clear(ctx)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrTransferFailed):
		return "transfer_failed"
	default:
		return "internal"
	}
}
