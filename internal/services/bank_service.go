package services

import (
	"errors"

	"github.com/swiftpay/wallet-backend/internal/idgen"
	"github.com/swiftpay/wallet-backend/internal/models"
	repo "github.com/swiftpay/wallet-backend/internal/repository"
)

// BankService owns bank account CRUD and the credit/debit ledger against
// account balances. Account balances move only through ledger entries.
type BankService struct {
	accounts repo.BankAccounts
	trx      repo.Transactions
}

func NewBankService(accounts repo.BankAccounts, trx repo.Transactions) *BankService {
	return &BankService{accounts: accounts, trx: trx}
}

func (s *BankService) CreateAccount(a models.BankAccount) (models.BankAccount, error) {
	if err := a.Validate(); err != nil {
		return models.BankAccount{}, err
	}
	return s.accounts.Create(a)
}

func (s *BankService) ListAccounts() ([]models.BankAccount, error) { return s.accounts.List() }

func (s *BankService) DeleteAccount(id string) error { return s.accounts.Delete(id) }

type EntryResult struct {
	Transaction models.Transaction
	Account     models.BankAccount
}

// AddEntry records a credit or debit against a bank account. The entry is
// persisted pending first, then the balance moves, then the entry turns
// terminal. A debit that would overdraw settles as failed with the balance
// untouched; that is a result, not an error.
func (s *BankService) AddEntry(txnID, accountNumber string, amount int64, typ models.TransactionType) (EntryResult, error) {
	if amount <= 0 {
		return EntryResult{}, ErrInvalidAmount
	}
	if typ != models.TxnCredit && typ != models.TxnDebit {
		return EntryResult{}, ErrInvalidType
	}
	if _, err := s.accounts.GetByNumber(accountNumber); err != nil {
		return EntryResult{}, err
	}

	if txnID == "" {
		var err error
		txnID, err = idgen.New(s.trx.Exists)
		if err != nil {
			return EntryResult{}, err
		}
	}

	tx, err := s.trx.Create(models.Transaction{
		ID:            txnID,
		AccountNumber: &accountNumber,
		Amount:        amount,
		Type:          typ,
		Status:        models.TxnPending,
	})
	if err != nil {
		return EntryResult{}, err
	}

	delta := amount
	if typ == models.TxnDebit {
		delta = -amount
	}

	acct, err := s.accounts.ApplyEntry(accountNumber, delta)
	if errors.Is(err, repo.ErrInsufficientFunds) {
		if _, ferr := s.trx.MarkFailed(tx.ID); ferr != nil {
			return EntryResult{}, ferr
		}
		tx.Status = models.TxnFailed
		current, gerr := s.accounts.GetByNumber(accountNumber)
		if gerr != nil {
			return EntryResult{}, gerr
		}
		return EntryResult{Transaction: tx, Account: current}, nil
	}
	if err != nil {
		return EntryResult{}, err
	}

	if _, err := s.trx.MarkSuccess(tx.ID); err != nil {
		return EntryResult{}, err
	}
	tx.Status = models.TxnSuccess
	return EntryResult{Transaction: tx, Account: acct}, nil
}

// AddMoney is the credit shortcut with a generated transaction id.
func (s *BankService) AddMoney(accountNumber string, amount int64) (EntryResult, error) {
	return s.AddEntry("", accountNumber, amount, models.TxnCredit)
}

func (s *BankService) History(accountNumber string, limit, offset int) ([]models.Transaction, error) {
	return s.trx.List(accountNumber, limit, offset)
}
