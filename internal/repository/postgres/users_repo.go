package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swiftpay/wallet-backend/internal/models"
	repo "github.com/swiftpay/wallet-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func (r *usersRepo) Create(phone, passwordHash string) (models.User, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO users(id, phone, password_hash) VALUES($1,$2,$3)`,
		id, phone, passwordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, repo.ErrDuplicateUser
		}
		return models.User{}, err
	}
	return r.GetByID(id)
}

func (r *usersRepo) GetByID(id string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, phone, password_hash, created_at, updated_at FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.Phone, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repo.ErrNotFound
	}
	return u, err
}

func (r *usersRepo) GetByPhone(phone string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, phone, password_hash, created_at, updated_at FROM users WHERE phone=$1`, phone,
	).Scan(&u.ID, &u.Phone, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repo.ErrNotFound
	}
	return u, err
}
