package dto

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string           `json:"name"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}

// Validate checks required fields, collecting every violation into a single
// comma-joined "field: message" error.
func (r *CreateAccountRequest) Validate() error {
	var violations []string
	if strings.TrimSpace(r.Name) == "" {
		violations = append(violations, "name: Account holder name is required")
	}
	if r.InitialBalance == nil {
		violations = append(violations, "initial_balance: Initial balance is required")
	} else if r.InitialBalance.IsNegative() {
		violations = append(violations, "initial_balance: Initial balance must not be negative")
	}
	return joinViolations(violations)
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		InitialBalance: *r.InitialBalance,
	}
}

// TransferRequest represents a request to move money between two accounts.
type TransferRequest struct {
	FromAccountID string           `json:"from_account_id"`
	ToAccountID   string           `json:"to_account_id"`
	Amount        *decimal.Decimal `json:"amount"`
	Description   string           `json:"description,omitempty"`
}

// Validate checks required fields.
func (r *TransferRequest) Validate() error {
	var violations []string
	if r.FromAccountID == "" {
		violations = append(violations, "from_account_id: Source account is required")
	}
	if r.ToAccountID == "" {
		violations = append(violations, "to_account_id: Destination account is required")
	}
	violations = appendAmountViolations(violations, r.Amount)
	return joinViolations(violations)
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        *r.Amount,
		Description:   r.Description,
	}
}

// DepositRequest represents a request to credit an account.
type DepositRequest struct {
	ToAccountID string           `json:"to_account_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description,omitempty"`
}

// Validate checks required fields.
func (r *DepositRequest) Validate() error {
	var violations []string
	if r.ToAccountID == "" {
		violations = append(violations, "to_account_id: Destination account is required")
	}
	violations = appendAmountViolations(violations, r.Amount)
	return joinViolations(violations)
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput() usecase.DepositInput {
	return usecase.DepositInput{
		ToAccountID: r.ToAccountID,
		Amount:      *r.Amount,
		Description: r.Description,
	}
}

// WithdrawRequest represents a request to debit an account.
type WithdrawRequest struct {
	FromAccountID string           `json:"from_account_id"`
	Amount        *decimal.Decimal `json:"amount"`
	Description   string           `json:"description,omitempty"`
}

// Validate checks required fields.
func (r *WithdrawRequest) Validate() error {
	var violations []string
	if r.FromAccountID == "" {
		violations = append(violations, "from_account_id: Source account is required")
	}
	violations = appendAmountViolations(violations, r.Amount)
	return joinViolations(violations)
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput() usecase.WithdrawInput {
	return usecase.WithdrawInput{
		FromAccountID: r.FromAccountID,
		Amount:        *r.Amount,
		Description:   r.Description,
	}
}

func appendAmountViolations(violations []string, amount *decimal.Decimal) []string {
	if amount == nil {
		return append(violations, "amount: Amount is required")
	}
	if !amount.IsPositive() {
		return append(violations, "amount: Amount must be positive")
	}
	return violations
}

func joinViolations(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return errors.New(strings.Join(violations, ", "))
}
