package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/swiftpay/wallet-backend/internal/gateway"
	"github.com/swiftpay/wallet-backend/internal/models"
	"github.com/swiftpay/wallet-backend/internal/notify"
	repo "github.com/swiftpay/wallet-backend/internal/repository"
)

// memStore backs the repository interfaces for tests. All mutation goes
// through one mutex so the concurrency tests exercise the service layer's
// guarantees, not accidental fake-level races.
type memStore struct {
	mu       sync.Mutex
	txns     map[string]models.Transaction
	order    []string
	balances map[string]models.Balance
	accounts map[string]models.BankAccount
	users    map[string]models.User // by phone
}

func newMemStore() *memStore {
	return &memStore{
		txns:     make(map[string]models.Transaction),
		balances: make(map[string]models.Balance),
		accounts: make(map[string]models.BankAccount),
		users:    make(map[string]models.User),
	}
}

func (s *memStore) Txns() repo.Transactions     { return &memTxns{s} }
func (s *memStore) Balances() repo.Balances     { return &memBalances{s} }
func (s *memStore) Accounts() repo.BankAccounts { return &memAccounts{s} }
func (s *memStore) Users() repo.Users           { return &memUsers{s} }

type memTxns struct{ s *memStore }

func (m *memTxns) Create(tx models.Transaction) (models.Transaction, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.txns[tx.ID]; ok {
		return models.Transaction{}, repo.ErrDuplicateTransaction
	}
	tx.CreatedAt = time.Now()
	m.s.txns[tx.ID] = tx
	m.s.order = append(m.s.order, tx.ID)
	return tx, nil
}

func (m *memTxns) GetByID(id string) (models.Transaction, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	tx, ok := m.s.txns[id]
	if !ok {
		return models.Transaction{}, repo.ErrNotFound
	}
	return tx, nil
}

func (m *memTxns) Exists(id string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	_, ok := m.s.txns[id]
	return ok, nil
}

func (m *memTxns) List(accountNumber string, limit, offset int) ([]models.Transaction, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.Transaction
	for i := len(m.s.order) - 1; i >= 0; i-- {
		tx := m.s.txns[m.s.order[i]]
		if accountNumber != "" && (tx.AccountNumber == nil || *tx.AccountNumber != accountNumber) {
			continue
		}
		out = append(out, tx)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memTxns) SettleCredit(_ context.Context, txnID string) (models.Balance, bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	tx, ok := m.s.txns[txnID]
	if !ok {
		return models.Balance{}, false, repo.ErrNotFound
	}
	if tx.UserID == nil {
		return models.Balance{}, false, repo.ErrNotFound
	}
	if tx.Status.Terminal() {
		return m.s.balances[*tx.UserID], false, nil
	}
	tx.Status = models.TxnSuccess
	m.s.txns[txnID] = tx

	b := m.s.balances[*tx.UserID]
	b.UserID = *tx.UserID
	b.Amount += tx.Amount
	b.LastUpdatedAt = time.Now()
	m.s.balances[*tx.UserID] = b
	return b, true, nil
}

func (m *memTxns) MarkSuccess(txnID string) (bool, error) {
	return m.transition(txnID, models.TxnSuccess)
}

func (m *memTxns) MarkFailed(txnID string) (bool, error) {
	return m.transition(txnID, models.TxnFailed)
}

func (m *memTxns) transition(txnID string, to models.TransactionStatus) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	tx, ok := m.s.txns[txnID]
	if !ok || tx.Status != models.TxnPending {
		return false, nil
	}
	tx.Status = to
	m.s.txns[txnID] = tx
	return true, nil
}

type memBalances struct{ s *memStore }

func (m *memBalances) GetOrCreate(userID string) (models.Balance, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	b, ok := m.s.balances[userID]
	if !ok {
		b = models.Balance{UserID: userID, LastUpdatedAt: time.Now()}
		m.s.balances[userID] = b
	}
	return b, nil
}

func (m *memBalances) Get(userID string) (models.Balance, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	b, ok := m.s.balances[userID]
	if !ok {
		return models.Balance{}, repo.ErrNotFound
	}
	return b, nil
}

type memAccounts struct{ s *memStore }

func (m *memAccounts) Create(a models.BankAccount) (models.BankAccount, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.accounts[a.AccountNumber]; ok {
		return models.BankAccount{}, repo.ErrDuplicateAccount
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.s.accounts[a.AccountNumber] = a
	return a, nil
}

func (m *memAccounts) List() ([]models.BankAccount, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.BankAccount
	for _, a := range m.s.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (m *memAccounts) GetByNumber(accountNumber string) (models.BankAccount, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a, ok := m.s.accounts[accountNumber]
	if !ok {
		return models.BankAccount{}, repo.ErrNotFound
	}
	return a, nil
}

func (m *memAccounts) Delete(id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for num, a := range m.s.accounts {
		if a.ID == id {
			delete(m.s.accounts, num)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (m *memAccounts) ApplyEntry(accountNumber string, delta int64) (models.BankAccount, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a, ok := m.s.accounts[accountNumber]
	if !ok {
		return models.BankAccount{}, repo.ErrNotFound
	}
	if a.Balance+delta < 0 {
		return models.BankAccount{}, repo.ErrInsufficientFunds
	}
	a.Balance += delta
	a.UpdatedAt = time.Now()
	m.s.accounts[accountNumber] = a
	return a, nil
}

type memUsers struct{ s *memStore }

func (m *memUsers) Create(phone, passwordHash string) (models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.users[phone]; ok {
		return models.User{}, repo.ErrDuplicateUser
	}
	u := models.User{ID: uuid.NewString(), Phone: phone, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.s.users[phone] = u
	return u, nil
}

func (m *memUsers) GetByID(id string) (models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (m *memUsers) GetByPhone(phone string) (models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u, ok := m.s.users[phone]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

// fakeGateway scripts the external processor.
type fakeGateway struct {
	mu          sync.Mutex
	code        string
	redirectURL string
	initiateErr error
	statusErr   error
	onInitiate  func(txnID string)
	initiated   []string
	statusCalls int
}

func (g *fakeGateway) Initiate(_ context.Context, req gateway.InitiateRequest) (string, error) {
	g.mu.Lock()
	g.initiated = append(g.initiated, req.TransactionID)
	hook := g.onInitiate
	g.mu.Unlock()
	if hook != nil {
		hook(req.TransactionID)
	}
	if g.initiateErr != nil {
		return "", g.initiateErr
	}
	return g.redirectURL, nil
}

func (g *fakeGateway) Status(_ context.Context, _ string) (string, error) {
	g.mu.Lock()
	g.statusCalls++
	g.mu.Unlock()
	if g.statusErr != nil {
		return "", g.statusErr
	}
	return g.code, nil
}

// collectingBroker records published events.
type collectingBroker struct {
	mu     sync.Mutex
	events []notify.Event
}

func (b *collectingBroker) Publish(e notify.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *collectingBroker) Subscribe() (<-chan notify.Event, func()) {
	ch := make(chan notify.Event)
	close(ch)
	return ch, func() {}
}

func (b *collectingBroker) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}
