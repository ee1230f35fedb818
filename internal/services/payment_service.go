package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/swiftpay/wallet-backend/internal/gateway"
	"github.com/swiftpay/wallet-backend/internal/idgen"
	"github.com/swiftpay/wallet-backend/internal/metrics"
	"github.com/swiftpay/wallet-backend/internal/models"
	"github.com/swiftpay/wallet-backend/internal/notify"
	repo "github.com/swiftpay/wallet-backend/internal/repository"
	"github.com/swiftpay/wallet-backend/internal/worker"
)

// PaymentService drives the payment lifecycle: initiate -> pending ->
// status check -> settle. A settlement credits the wallet balance exactly
// once no matter how many times or how concurrently the status check runs.
type PaymentService struct {
	trx    repo.Transactions
	bal    repo.Balances
	gw     gateway.Client
	broker notify.Broker
	wp     *worker.Pool

	// newID is swappable for tests.
	newID func(idgen.ExistsFunc) (string, error)
	locks keyedMutex
}

func NewPaymentService(trx repo.Transactions, bal repo.Balances, gw gateway.Client, broker notify.Broker, wp *worker.Pool) *PaymentService {
	return &PaymentService{
		trx:    trx,
		bal:    bal,
		gw:     gw,
		broker: broker,
		wp:     wp,
		newID:  idgen.New,
	}
}

type InitiateResult struct {
	TransactionID string
	PaymentURL    string
}

// Initiate persists a pending transaction before the gateway sees the id:
// a crash after the insert leaves an auditable pending row instead of an
// external charge with no local record.
func (s *PaymentService) Initiate(ctx context.Context, userID string, amountPaise int64) (InitiateResult, error) {
	if amountPaise <= 0 {
		return InitiateResult{}, ErrInvalidAmount
	}

	id, err := s.newID(s.trx.Exists)
	if err != nil {
		return InitiateResult{}, err
	}

	tx := models.Transaction{
		ID:     id,
		UserID: &userID,
		Amount: amountPaise,
		Type:   models.TxnCredit,
		Status: models.TxnPending,
	}
	if _, err := s.trx.Create(tx); err != nil {
		return InitiateResult{}, err
	}

	url, err := s.gw.Initiate(ctx, gateway.InitiateRequest{TransactionID: id, AmountPaise: amountPaise})
	if err != nil {
		metrics.GatewayErrors.Inc()
		// The row stays pending for a later status check; no rollback.
		slog.Warn("payment initiation left pending", "txn", id, "err", err)
		if errors.Is(err, gateway.ErrNoRedirectURL) {
			return InitiateResult{}, fmt.Errorf("%w: %v", ErrGatewayResponse, err)
		}
		return InitiateResult{}, err
	}

	metrics.PaymentsInitiated.Inc()
	return InitiateResult{TransactionID: id, PaymentURL: url}, nil
}

type StatusResult struct {
	TransactionID    string
	Status           models.TransactionStatus
	AlreadyProcessed bool
	// Balance is set when the transaction is (or already was) settled.
	Balance *models.Balance
}

// CheckStatus asks the gateway for the transaction's fate and settles it.
// Calls for the same id are serialized by a per-id mutex; the settlement
// itself is additionally guarded by a conditional store update, so even
// racing processes credit at most once.
func (s *PaymentService) CheckStatus(ctx context.Context, txnID string) (StatusResult, error) {
	unlock := s.locks.lock(txnID)
	defer unlock()

	tx, err := s.trx.GetByID(txnID)
	if err != nil {
		return StatusResult{}, err
	}

	// Terminal states are absorbing; no gateway round trip needed.
	if tx.Status == models.TxnSuccess {
		res := StatusResult{TransactionID: txnID, Status: models.TxnSuccess, AlreadyProcessed: true}
		if tx.UserID != nil {
			if b, err := s.bal.GetOrCreate(*tx.UserID); err == nil {
				res.Balance = &b
			}
		}
		return res, nil
	}
	if tx.Status == models.TxnFailed {
		return StatusResult{TransactionID: txnID, Status: models.TxnFailed, AlreadyProcessed: true}, nil
	}

	code, err := s.gw.Status(ctx, txnID)
	if err != nil {
		metrics.GatewayErrors.Inc()
		return StatusResult{}, err
	}

	switch code {
	case gateway.CodeSuccess:
		b, applied, err := s.trx.SettleCredit(ctx, txnID)
		if err != nil {
			return StatusResult{}, err
		}
		if applied {
			metrics.PaymentsSettled.WithLabelValues("success").Inc()
			e := notify.Event{UserID: b.UserID, Balance: b.Amount, At: time.Now()}
			s.wp.Submit(func() { s.broker.Publish(e) })
		}
		return StatusResult{TransactionID: txnID, Status: models.TxnSuccess, AlreadyProcessed: !applied, Balance: &b}, nil

	case gateway.CodePending:
		return StatusResult{TransactionID: txnID, Status: models.TxnPending}, nil

	default:
		applied, err := s.trx.MarkFailed(txnID)
		if err != nil {
			return StatusResult{}, err
		}
		if applied {
			metrics.PaymentsSettled.WithLabelValues("failed").Inc()
		}
		return StatusResult{TransactionID: txnID, Status: models.TxnFailed}, nil
	}
}

func (s *PaymentService) GetByID(id string) (models.Transaction, error) {
	return s.trx.GetByID(id)
}

// keyedMutex hands out one mutex per transaction id. Entries are kept for
// the process lifetime; ids are low-cardinality enough that this beats the
// bookkeeping of reference counting.
type keyedMutex struct {
	m sync.Map
}

func (k *keyedMutex) lock(key string) func() {
	v, _ := k.m.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
