package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/swiftpay/wallet-backend/internal/repository"
)

type Repositories struct {
	Users        repo.Users
	Balances     repo.Balances
	Transactions repo.Transactions
	BankAccounts repo.BankAccounts
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:        &usersRepo{pool},
		Balances:     &balancesRepo{pool},
		Transactions: &transactionsRepo{pool},
		BankAccounts: &bankAccountsRepo{pool},
	}
}
