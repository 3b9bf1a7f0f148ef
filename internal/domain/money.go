package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the canonical number of fractional digits for money values.
const MoneyScale = 2

// NormalizeAmount checks that raw carries at most MoneyScale fractional digits
// and returns it rounded half-to-even to the canonical scale. Over-precise
// input is a validation error, never a silent rounding.
func NormalizeAmount(raw decimal.Decimal) (decimal.Decimal, error) {
	if raw.Exponent() < -MoneyScale {
		return decimal.Zero, fmt.Errorf("%w: amount cannot have more than %d decimal places", ErrInvalidAmount, MoneyScale)
	}

	return raw.RoundBank(MoneyScale), nil
}

// NormalizePositiveAmount normalizes an operation amount, which must be
// strictly positive. Used by deposit, withdrawal and transfer.
func NormalizePositiveAmount(raw decimal.Decimal) (decimal.Decimal, error) {
	if raw.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}

	return NormalizeAmount(raw)
}

// NormalizeBalance normalizes a balance value, which must be non-negative.
// Used for initial balances at account creation.
func NormalizeBalance(raw decimal.Decimal) (decimal.Decimal, error) {
	if raw.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: balance cannot be negative", ErrInvalidAmount)
	}

	return NormalizeAmount(raw)
}

// FormatMoney renders a money value for API responses with a leading currency
// marker and exactly two decimal digits. Core arithmetic never touches this.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(MoneyScale)
}
