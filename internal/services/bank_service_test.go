package services

import (
	"errors"
	"testing"

	"github.com/swiftpay/wallet-backend/internal/models"
	repo "github.com/swiftpay/wallet-backend/internal/repository"
)

func newBankFixture(t *testing.T) (*BankService, *memStore) {
	t.Helper()
	store := newMemStore()
	svc := NewBankService(store.Accounts(), store.Txns())
	if _, err := svc.CreateAccount(models.BankAccount{
		AccountHolder: "Asha Rao",
		AccountNumber: "1234567890",
		IFSCCode:      "HDFC0001234",
	}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	return svc, store
}

func TestCreateAccountValidation(t *testing.T) {
	svc := NewBankService(newMemStore().Accounts(), newMemStore().Txns())
	_, err := svc.CreateAccount(models.BankAccount{AccountNumber: "111", IFSCCode: "X"})
	if err == nil {
		t.Error("expected validation error for missing holder")
	}
}

func TestCreateAccountDuplicateNumber(t *testing.T) {
	svc, _ := newBankFixture(t)
	_, err := svc.CreateAccount(models.BankAccount{
		AccountHolder: "Someone Else",
		AccountNumber: "1234567890",
		IFSCCode:      "ICIC0004321",
	})
	if !errors.Is(err, repo.ErrDuplicateAccount) {
		t.Errorf("got %v, want ErrDuplicateAccount", err)
	}
}

func TestDeleteAccountNotFound(t *testing.T) {
	svc, _ := newBankFixture(t)
	if err := svc.DeleteAccount("no-such-id"); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCreditEntrySettles(t *testing.T) {
	svc, _ := newBankFixture(t)

	res, err := svc.AddEntry("TXNC1", "1234567890", 5000, models.TxnCredit)
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if res.Transaction.Status != models.TxnSuccess {
		t.Errorf("status = %s", res.Transaction.Status)
	}
	if res.Account.Balance != 5000 {
		t.Errorf("balance = %d, want 5000", res.Account.Balance)
	}
}

func TestDebitInsufficientFundsFailsWithBalanceUnchanged(t *testing.T) {
	svc, store := newBankFixture(t)
	if _, err := svc.AddEntry("TXNC1", "1234567890", 1000, models.TxnCredit); err != nil {
		t.Fatal(err)
	}

	res, err := svc.AddEntry("TXND1", "1234567890", 5000, models.TxnDebit)
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if res.Transaction.Status != models.TxnFailed {
		t.Errorf("status = %s, want failed", res.Transaction.Status)
	}
	if res.Account.Balance != 1000 {
		t.Errorf("balance = %d, want unchanged 1000", res.Account.Balance)
	}

	tx, err := store.Txns().GetByID("TXND1")
	if err != nil {
		t.Fatal(err)
	}
	if tx.Status != models.TxnFailed {
		t.Errorf("stored status = %s, want failed", tx.Status)
	}
}

func TestDebitWithinBalance(t *testing.T) {
	svc, _ := newBankFixture(t)
	if _, err := svc.AddEntry("TXNC1", "1234567890", 5000, models.TxnCredit); err != nil {
		t.Fatal(err)
	}

	res, err := svc.AddEntry("TXND1", "1234567890", 3000, models.TxnDebit)
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if res.Transaction.Status != models.TxnSuccess || res.Account.Balance != 2000 {
		t.Errorf("result = %+v", res)
	}
}

func TestAddEntryRejectsBadInput(t *testing.T) {
	svc, _ := newBankFixture(t)

	if _, err := svc.AddEntry("T1", "1234567890", 0, models.TxnCredit); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: got %v", err)
	}
	if _, err := svc.AddEntry("T2", "1234567890", 100, "transfer"); !errors.Is(err, ErrInvalidType) {
		t.Errorf("bad type: got %v", err)
	}
	if _, err := svc.AddEntry("T3", "0000", 100, models.TxnCredit); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("unknown account: got %v", err)
	}
}

func TestAddEntryDuplicateTransactionID(t *testing.T) {
	svc, _ := newBankFixture(t)
	if _, err := svc.AddEntry("TXNSAME", "1234567890", 100, models.TxnCredit); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddEntry("TXNSAME", "1234567890", 100, models.TxnCredit); !errors.Is(err, repo.ErrDuplicateTransaction) {
		t.Errorf("got %v, want ErrDuplicateTransaction", err)
	}
}

func TestAddMoneyGeneratesID(t *testing.T) {
	svc, _ := newBankFixture(t)

	res, err := svc.AddMoney("1234567890", 2500)
	if err != nil {
		t.Fatalf("AddMoney: %v", err)
	}
	if res.Transaction.ID == "" || res.Transaction.Type != models.TxnCredit {
		t.Errorf("transaction = %+v", res.Transaction)
	}
	if res.Account.Balance != 2500 {
		t.Errorf("balance = %d", res.Account.Balance)
	}
}

func TestHistoryFiltersByAccount(t *testing.T) {
	svc, _ := newBankFixture(t)
	if _, err := svc.CreateAccount(models.BankAccount{
		AccountHolder: "Vikram Nair", AccountNumber: "222", IFSCCode: "SBIN0000222",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddEntry("T1", "1234567890", 100, models.TxnCredit); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddEntry("T2", "222", 200, models.TxnCredit); err != nil {
		t.Fatal(err)
	}

	all, err := svc.History("", 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered history has %d entries", len(all))
	}

	only, err := svc.History("222", 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(only) != 1 || only[0].ID != "T2" {
		t.Errorf("filtered history = %+v", only)
	}
}
