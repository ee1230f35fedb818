package repository

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateTransaction = errors.New("transaction id already exists")
	ErrDuplicateAccount     = errors.New("account number already exists")
	ErrDuplicateUser        = errors.New("user already exists")
	ErrInsufficientFunds    = errors.New("insufficient funds")
)
