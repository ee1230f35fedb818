package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swiftpay/wallet-backend/internal/models"
	repo "github.com/swiftpay/wallet-backend/internal/repository"
)

type balancesRepo struct{ pool *pgxpool.Pool }

func (r *balancesRepo) GetOrCreate(userID string) (models.Balance, error) {
	if b, err := r.Get(userID); err == nil {
		return b, nil
	}
	_, err := r.pool.Exec(
		context.Background(),
		`INSERT INTO balances(user_id, amount, last_updated_at)
		 VALUES($1, 0, now())
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return models.Balance{}, err
	}
	return r.Get(userID)
}

func (r *balancesRepo) Get(userID string) (models.Balance, error) {
	var b models.Balance
	err := r.pool.QueryRow(
		context.Background(),
		`SELECT user_id, amount, last_updated_at
		   FROM balances
		  WHERE user_id=$1`,
		userID,
	).Scan(&b.UserID, &b.Amount, &b.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Balance{}, repo.ErrNotFound
	}
	return b, err
}
