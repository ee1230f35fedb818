package models

import "time"

type TransactionType string

const (
	TxnCredit TransactionType = "credit"
	TxnDebit  TransactionType = "debit"
)

type TransactionStatus string

const (
	TxnPending TransactionStatus = "pending"
	TxnSuccess TransactionStatus = "success"
	TxnFailed  TransactionStatus = "failed"
)

// Terminal reports whether a status admits no further transition.
func (s TransactionStatus) Terminal() bool {
	return s == TxnSuccess || s == TxnFailed
}

// Transaction is a single ledger entry. Gateway top-ups carry UserID and
// credit the wallet balance on settlement; bank entries carry
// AccountNumber and move a bank account balance. Amount is in paise.
type Transaction struct {
	ID            string            `json:"id"`
	UserID        *string           `json:"user_id,omitempty"`
	AccountNumber *string           `json:"account_number,omitempty"`
	Amount        int64             `json:"amount"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}
