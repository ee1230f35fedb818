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

type bankAccountsRepo struct{ pool *pgxpool.Pool }

func (r *bankAccountsRepo) Create(a models.BankAccount) (models.BankAccount, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(
		context.Background(),
		`INSERT INTO bank_accounts(id, account_holder, account_number, ifsc_code, balance)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING id, account_holder, account_number, ifsc_code, balance, created_at, updated_at`,
		a.ID, a.AccountHolder, a.AccountNumber, a.IFSCCode, a.Balance,
	).Scan(&a.ID, &a.AccountHolder, &a.AccountNumber, &a.IFSCCode, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.BankAccount{}, repo.ErrDuplicateAccount
		}
		return models.BankAccount{}, err
	}
	return a, nil
}

func (r *bankAccountsRepo) List() ([]models.BankAccount, error) {
	rows, err := r.pool.Query(
		context.Background(),
		`SELECT id, account_holder, account_number, ifsc_code, balance, created_at, updated_at
		   FROM bank_accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BankAccount
	for rows.Next() {
		var a models.BankAccount
		if err := rows.Scan(&a.ID, &a.AccountHolder, &a.AccountNumber, &a.IFSCCode, &a.Balance, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *bankAccountsRepo) GetByNumber(accountNumber string) (models.BankAccount, error) {
	var a models.BankAccount
	err := r.pool.QueryRow(
		context.Background(),
		`SELECT id, account_holder, account_number, ifsc_code, balance, created_at, updated_at
		   FROM bank_accounts WHERE account_number=$1`,
		accountNumber,
	).Scan(&a.ID, &a.AccountHolder, &a.AccountNumber, &a.IFSCCode, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.BankAccount{}, repo.ErrNotFound
	}
	return a, err
}

func (r *bankAccountsRepo) Delete(id string) error {
	ct, err := r.pool.Exec(context.Background(), `DELETE FROM bank_accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ApplyEntry relies on the balance >= 0 guard in the WHERE clause rather
// than a read-then-write, so concurrent debits cannot overdraw.
func (r *bankAccountsRepo) ApplyEntry(accountNumber string, delta int64) (models.BankAccount, error) {
	var a models.BankAccount
	err := r.pool.QueryRow(
		context.Background(),
		`UPDATE bank_accounts
		    SET balance = balance + $2,
		        updated_at = now()
		  WHERE account_number = $1 AND balance + $2 >= 0
		  RETURNING id, account_holder, account_number, ifsc_code, balance, created_at, updated_at`,
		accountNumber, delta,
	).Scan(&a.ID, &a.AccountHolder, &a.AccountNumber, &a.IFSCCode, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the account is missing or the debit would overdraw.
		if _, gerr := r.GetByNumber(accountNumber); gerr != nil {
			return models.BankAccount{}, gerr
		}
		return models.BankAccount{}, repo.ErrInsufficientFunds
	}
	return a, err
}
