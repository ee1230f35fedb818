package services

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidType        = errors.New("transaction type must be credit or debit")
	ErrGatewayResponse    = errors.New("unexpected gateway response")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
