package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Amount errors
	ErrInvalidAmount = errors.New("invalid amount")

	// Transfer errors
	ErrSameAccount    = errors.New("cannot transfer to same account")
	ErrTransferFailed = errors.New("transfer failed")
)
