package repository

import (
	"context"

	"github.com/swiftpay/wallet-backend/internal/models"
)

type Users interface {
	Create(phone, passwordHash string) (models.User, error)
	GetByID(id string) (models.User, error)
	GetByPhone(phone string) (models.User, error)
}

type Balances interface {
	GetOrCreate(userID string) (models.Balance, error)
	Get(userID string) (models.Balance, error)
}

type Transactions interface {
	Create(tx models.Transaction) (models.Transaction, error)
	GetByID(id string) (models.Transaction, error)
	Exists(id string) (bool, error)
	// List returns newest-first; accountNumber == "" means no filter.
	List(accountNumber string, limit, offset int) ([]models.Transaction, error)

	// SettleCredit flips the transaction to success and credits its owner's
	// wallet balance inside a single serializable database transaction.
	// applied is false when the row was already terminal, in which case the
	// returned balance is the current one and nothing was written.
	SettleCredit(ctx context.Context, txnID string) (bal models.Balance, applied bool, err error)

	// MarkSuccess and MarkFailed transition pending -> success/failed.
	// No effect on terminal rows; applied reports whether the row moved.
	MarkSuccess(txnID string) (applied bool, err error)
	MarkFailed(txnID string) (applied bool, err error)
}

type BankAccounts interface {
	Create(a models.BankAccount) (models.BankAccount, error)
	List() ([]models.BankAccount, error)
	GetByNumber(accountNumber string) (models.BankAccount, error)
	Delete(id string) error

	// ApplyEntry adjusts the account balance by delta. A debit that would
	// drive the balance negative returns ErrInsufficientFunds and leaves
	// the balance unchanged.
	ApplyEntry(accountNumber string, delta int64) (models.BankAccount, error)
}
