package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
	"github.com/iho/gobank/internal/usecase/mocks"
)

func newLedgerFixture(t *testing.T) (*usecase.LedgerUseCase, *mocks.MockAccountRepository, *mocks.MockTransactionRepository) {
	t.Helper()

	accountRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewLedgerUseCase(accountRepo, txnRepo, mocks.NewMockIDGenerator(), nil)

	return uc, accountRepo, txnRepo
}

func seedAccount(t *testing.T, repo *mocks.MockAccountRepository, id, balance string) {
	t.Helper()

	err := repo.Create(context.Background(), &domain.Account{
		ID:      id,
		Name:    "holder-" + id,
		Balance: decimal.RequireFromString(balance),
	})
	if err != nil {
		t.Fatalf("failed to seed account %s: %v", id, err)
	}
}

func accountBalance(t *testing.T, repo *mocks.MockAccountRepository, id string) string {
	t.Helper()

	acc, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to read account %s: %v", id, err)
	}

	return acc.Balance.StringFixed(domain.MoneyScale)
}

func TestLedgerUseCase_Deposit(t *testing.T) {
	uc, accountRepo, txnRepo := newLedgerFixture(t)
	seedAccount(t, accountRepo, "acc-a", "100.00")

	txn, err := uc.Deposit(context.Background(), usecase.DepositInput{
		ToAccountID: "acc-a",
		Amount:      decimal.RequireFromString("50.25"),
		Description: "payday",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txn.Type != domain.TransactionDeposit {
		t.Errorf("expected DEPOSIT, got %s", txn.Type)
	}
	if txn.FromAccountID != "" || txn.ToAccountID != "acc-a" {
		t.Errorf("expected destination-only record, got from=%q to=%q", txn.FromAccountID, txn.ToAccountID)
	}
	if got := accountBalance(t, accountRepo, "acc-a"); got != "150.25" {
		t.Errorf("expected balance 150.25, got %s", got)
	}
	if txnRepo.AppendCount() != 1 {
		t.Errorf("expected 1 record, got %d", txnRepo.AppendCount())
	}
}

func TestLedgerUseCase_Deposit_Failures(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.DepositInput
		wantErr error
	}{
		{
			name:    "missing account",
			input:   usecase.DepositInput{ToAccountID: "ghost", Amount: decimal.NewFromInt(10)},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:    "zero amount",
			input:   usecase.DepositInput{ToAccountID: "acc-a", Amount: decimal.Zero},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			input:   usecase.DepositInput{ToAccountID: "acc-a", Amount: decimal.NewFromInt(-5)},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "three decimal places",
			input:   usecase.DepositInput{ToAccountID: "acc-a", Amount: decimal.RequireFromString("10.005")},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accountRepo, txnRepo := newLedgerFixture(t)
			seedAccount(t, accountRepo, "acc-a", "100.00")

			_, err := uc.Deposit(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got := accountBalance(t, accountRepo, "acc-a"); got != "100.00" {
				t.Errorf("balance should be unchanged, got %s", got)
			}
			if txnRepo.AppendCount() != 0 {
				t.Errorf("no record should be written on failure, got %d", txnRepo.AppendCount())
			}
		})
	}
}

func TestLedgerUseCase_Withdraw(t *testing.T) {
	uc, accountRepo, txnRepo := newLedgerFixture(t)
	seedAccount(t, accountRepo, "acc-a", "100.00")

	txn, err := uc.Withdraw(context.Background(), usecase.WithdrawInput{
		FromAccountID: "acc-a",
		Amount:        decimal.RequireFromString("40.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txn.Type != domain.TransactionWithdrawal {
		t.Errorf("expected WITHDRAWAL, got %s", txn.Type)
	}
	if txn.FromAccountID != "acc-a" || txn.ToAccountID != "" {
		t.Errorf("expected source-only record, got from=%q to=%q", txn.FromAccountID, txn.ToAccountID)
	}
	if got := accountBalance(t, accountRepo, "acc-a"); got != "60.00" {
		t.Errorf("expected balance 60.00, got %s", got)
	}
	if txnRepo.AppendCount() != 1 {
		t.Errorf("expected 1 record, got %d", txnRepo.AppendCount())
	}
}

func TestLedgerUseCase_Withdraw_InsufficientFunds(t *testing.T) {
	uc, accountRepo, txnRepo := newLedgerFixture(t)
	seedAccount(t, accountRepo, "acc-a", "10.00")

	_, err := uc.Withdraw(context.Background(), usecase.WithdrawInput{
		FromAccountID: "acc-a",
		Amount:        decimal.RequireFromString("20.00"),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if got := accountBalance(t, accountRepo, "acc-a"); got != "10.00" {
		t.Errorf("balance should be unchanged, got %s", got)
	}
	if txnRepo.AppendCount() != 0 {
		t.Errorf("no record should be written on failure, got %d", txnRepo.AppendCount())
	}

	history, err := uc.GetHistory(context.Background(), "acc-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d records", len(history))
	}
}

func TestLedgerUseCase_Transfer(t *testing.T) {
	uc, accountRepo, _ := newLedgerFixture(t)
	seedAccount(t, accountRepo, "acc-a", "100.00")
	seedAccount(t, accountRepo, "acc-b", "0.00")

	txn, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccountID: "acc-a",
		ToAccountID:   "acc-b",
		Amount:        decimal.RequireFromString("30.00"),
		Description:   "rent",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txn.Type != domain.TransactionTransfer {
		t.Errorf("expected TRANSFER, got %s", txn.Type)
	}
	if txn.FromAccountID != "acc-a" || txn.ToAccountID != "acc-b" {
		t.Errorf("record references wrong accounts: from=%q to=%q", txn.FromAccountID, txn.ToAccountID)
	}
	if got := accountBalance(t, accountRepo, "acc-a"); got != "70.00" {
		t.Errorf("expected source balance 70.00, got %s", got)
	}
	if got := accountBalance(t, accountRepo, "acc-b"); got != "30.00" {
		t.Errorf("expected destination balance 30.00, got %s", got)
	}

	// The record is discoverable from both sides.
	for _, id := range []string{"acc-a", "acc-b"} {
		history, err := uc.GetHistory(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("expected 1 record for %s, got %d", id, len(history))
		}
		if !history[0].Amount.Equal(decimal.RequireFromString("30.00")) {
			t.Errorf("expected amount 30.00, got %s", history[0].Amount)
		}
	}
}

func TestLedgerUseCase_Transfer_Failures(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.TransferInput
		wantErr error
	}{
		{
			name: "self transfer",
			input: usecase.TransferInput{
				FromAccountID: "acc-a",
				ToAccountID:   "acc-a",
				Amount:        decimal.NewFromInt(10),
			},
			wantErr: domain.ErrSameAccount,
		},
		{
			name: "missing source",
			input: usecase.TransferInput{
				FromAccountID: "ghost",
				ToAccountID:   "acc-b",
				Amount:        decimal.NewFromInt(10),
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "missing destination",
			input: usecase.TransferInput{
				FromAccountID: "acc-a",
				ToAccountID:   "ghost",
				Amount:        decimal.NewFromInt(10),
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "insufficient funds",
			input: usecase.TransferInput{
				FromAccountID: "acc-a",
				ToAccountID:   "acc-b",
				Amount:        decimal.RequireFromString("100.01"),
			},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name: "over-precise amount",
			input: usecase.TransferInput{
				FromAccountID: "acc-a",
				ToAccountID:   "acc-b",
				Amount:        decimal.RequireFromString("10.005"),
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accountRepo, txnRepo := newLedgerFixture(t)
			seedAccount(t, accountRepo, "acc-a", "100.00")
			seedAccount(t, accountRepo, "acc-b", "50.00")

			_, err := uc.Transfer(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			if got := accountBalance(t, accountRepo, "acc-a"); got != "100.00" {
				t.Errorf("source balance should be unchanged, got %s", got)
			}
			if got := accountBalance(t, accountRepo, "acc-b"); got != "50.00" {
				t.Errorf("destination balance should be unchanged, got %s", got)
			}
			if txnRepo.AppendCount() != 0 {
				t.Errorf("no record should be written on failure, got %d", txnRepo.AppendCount())
			}
		})
	}
}

func TestLedgerUseCase_Transfer_CompensatesFailedDeposit(t *testing.T) {
	uc, accountRepo, txnRepo := newLedgerFixture(t)
	seedAccount(t, accountRepo, "acc-a", "100.00")
	seedAccount(t, accountRepo, "acc-b", "0.00")

	// Fail the first credit (the deposit leg); the compensating credit then
	// goes through the default in-memory path and restores the source.
	accountRepo.CreditFunc = func(ctx context.Context, id string, amount decimal.Decimal) error {
		accountRepo.CreditFunc = nil
		return errors.New("store rejected credit")
	}

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccountID: "acc-a",
		ToAccountID:   "acc-b",
		Amount:        decimal.RequireFromString("30.00"),
	})
	if !errors.Is(err, domain.ErrTransferFailed) {
		t.Fatalf("expected ErrTransferFailed, got %v", err)
	}

	if got := accountBalance(t, accountRepo, "acc-a"); got != "100.00" {
		t.Errorf("expected source restored to 100.00, got %s", got)
	}
	if got := accountBalance(t, accountRepo, "acc-b"); got != "0.00" {
		t.Errorf("expected destination unchanged at 0.00, got %s", got)
	}
	if txnRepo.AppendCount() != 0 {
		t.Errorf("no record should be written after compensation, got %d", txnRepo.AppendCount())
	}
}

func TestLedgerUseCase_Transfer_ErrorNamesMissingAccount(t *testing.T) {
	uc, accountRepo, _ := newLedgerFixture(t)
	seedAccount(t, accountRepo, "acc-a", "100.00")

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccountID: "acc-a",
		ToAccountID:   "ghost-account",
		Amount:        decimal.NewFromInt(10),
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "ghost-account") {
		t.Errorf("error should name the missing account, got %q", err.Error())
	}
}

func TestLedgerUseCase_ConcurrentTransfersConserveTotal(t *testing.T) {
	uc, accountRepo, _ := newLedgerFixture(t)
	seedAccount(t, accountRepo, "acc-a", "1000.00")
	seedAccount(t, accountRepo, "acc-b", "1000.00")

	const transfersPerDirection = 50
	amount := decimal.RequireFromString("10.00")

	var wg sync.WaitGroup
	for i := 0; i < transfersPerDirection; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := uc.Transfer(context.Background(), usecase.TransferInput{
				FromAccountID: "acc-a",
				ToAccountID:   "acc-b",
				Amount:        amount,
			})
			if err != nil {
				t.Errorf("a->b transfer failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			_, err := uc.Transfer(context.Background(), usecase.TransferInput{
				FromAccountID: "acc-b",
				ToAccountID:   "acc-a",
				Amount:        amount,
			})
			if err != nil {
				t.Errorf("b->a transfer failed: %v", err)
			}
		}()
	}
	wg.Wait()

	balA := decimal.RequireFromString(accountBalance(t, accountRepo, "acc-a"))
	balB := decimal.RequireFromString(accountBalance(t, accountRepo, "acc-b"))

	if balA.IsNegative() || balB.IsNegative() {
		t.Fatalf("balances must never go negative: a=%s b=%s", balA, balB)
	}
	if !balA.Add(balB).Equal(decimal.RequireFromString("2000.00")) {
		t.Fatalf("total must be conserved, got a=%s b=%s", balA, balB)
	}

	history, err := uc.GetHistory(context.Background(), "acc-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2*transfersPerDirection {
		t.Errorf("expected %d records, got %d", 2*transfersPerDirection, len(history))
	}
}

func TestLedgerUseCase_Reset(t *testing.T) {
	uc, accountRepo, txnRepo := newLedgerFixture(t)
	seedAccount(t, accountRepo, "acc-a", "100.00")

	if _, err := uc.Deposit(context.Background(), usecase.DepositInput{
		ToAccountID: "acc-a",
		Amount:      decimal.NewFromInt(10),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.Reset(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := accountRepo.GetByID(context.Background(), "acc-a"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account store to be cleared, got %v", err)
	}
	if txnRepo.AppendCount() != 0 {
		t.Errorf("expected transaction log to be cleared")
	}
}
