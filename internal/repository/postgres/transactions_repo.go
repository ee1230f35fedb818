package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swiftpay/wallet-backend/internal/models"
	repo "github.com/swiftpay/wallet-backend/internal/repository"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

func (r *transactionsRepo) Create(tx models.Transaction) (models.Transaction, error) {
	err := r.pool.QueryRow(
		context.Background(),
		`INSERT INTO transactions (id, user_id, account_number, amount, type, status)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING id, user_id, account_number, amount, type, status, created_at`,
		tx.ID, tx.UserID, tx.AccountNumber, tx.Amount, tx.Type, tx.Status,
	).Scan(&tx.ID, &tx.UserID, &tx.AccountNumber, &tx.Amount, &tx.Type, &tx.Status, &tx.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Transaction{}, repo.ErrDuplicateTransaction
		}
		return models.Transaction{}, err
	}
	return tx, nil
}

func (r *transactionsRepo) GetByID(id string) (models.Transaction, error) {
	var tx models.Transaction
	err := r.pool.QueryRow(
		context.Background(),
		`SELECT id, user_id, account_number, amount, type, status, created_at
		   FROM transactions
		  WHERE id=$1`,
		id,
	).Scan(&tx.ID, &tx.UserID, &tx.AccountNumber, &tx.Amount, &tx.Type, &tx.Status, &tx.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, repo.ErrNotFound
	}
	return tx, err
}

func (r *transactionsRepo) Exists(id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *transactionsRepo) List(accountNumber string, limit, offset int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(
		context.Background(),
		`SELECT id, user_id, account_number, amount, type, status, created_at
		   FROM transactions
		  WHERE ($1 = '' OR account_number = $1)
		  ORDER BY created_at DESC
		  LIMIT $2 OFFSET $3`,
		accountNumber, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.AccountNumber, &tx.Amount, &tx.Type, &tx.Status, &tx.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// SettleCredit is the settlement unit of work: the status flip and the
// balance credit either both commit or neither does. The row lock on the
// transaction serializes concurrent settles for the same id.
func (r *transactionsRepo) SettleCredit(ctx context.Context, txnID string) (models.Balance, bool, error) {
	dbtx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return models.Balance{}, false, err
	}
	defer dbtx.Rollback(ctx)

	var userID *string
	var amount int64
	var status models.TransactionStatus
	err = dbtx.QueryRow(ctx,
		`SELECT user_id, amount, status FROM transactions WHERE id=$1 FOR UPDATE`,
		txnID,
	).Scan(&userID, &amount, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Balance{}, false, repo.ErrNotFound
	}
	if err != nil {
		return models.Balance{}, false, err
	}
	if userID == nil {
		return models.Balance{}, false, errors.New("transaction has no wallet owner")
	}

	if status.Terminal() {
		var b models.Balance
		err = dbtx.QueryRow(ctx,
			`SELECT user_id, amount, last_updated_at FROM balances WHERE user_id=$1`,
			*userID,
		).Scan(&b.UserID, &b.Amount, &b.LastUpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			b = models.Balance{UserID: *userID}
			err = nil
		}
		if err != nil {
			return models.Balance{}, false, err
		}
		return b, false, dbtx.Commit(ctx)
	}

	if _, err := dbtx.Exec(ctx,
		`UPDATE transactions SET status='success' WHERE id=$1`, txnID); err != nil {
		return models.Balance{}, false, err
	}

	var b models.Balance
	err = dbtx.QueryRow(ctx,
		`INSERT INTO balances(user_id, amount, last_updated_at)
		 VALUES($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE
		   SET amount = balances.amount + EXCLUDED.amount,
		       last_updated_at = now()
		 RETURNING user_id, amount, last_updated_at`,
		*userID, amount,
	).Scan(&b.UserID, &b.Amount, &b.LastUpdatedAt)
	if err != nil {
		return models.Balance{}, false, err
	}

	if err := dbtx.Commit(ctx); err != nil {
		return models.Balance{}, false, err
	}
	return b, true, nil
}

func (r *transactionsRepo) MarkSuccess(txnID string) (bool, error) {
	ct, err := r.pool.Exec(
		context.Background(),
		`UPDATE transactions SET status='success' WHERE id=$1 AND status='pending'`,
		txnID,
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *transactionsRepo) MarkFailed(txnID string) (bool, error) {
	ct, err := r.pool.Exec(
		context.Background(),
		`UPDATE transactions SET status='failed' WHERE id=$1 AND status='pending'`,
		txnID,
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
