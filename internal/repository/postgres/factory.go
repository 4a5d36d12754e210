package postgres

import (
	repo "github.com/cribnhq/cribn-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users        repo.Users
	Wallets      repo.Wallets
	Transactions repo.WalletTransactions
	Events       repo.Events
	Tickets      repo.EventTickets
	AuditLogs    repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:        &usersRepo{pool},
		Wallets:      &walletsRepo{pool},
		Transactions: &transactionsRepo{pool},
		Events:       &eventsRepo{pool},
		Tickets:      &ticketsRepo{pool},
		AuditLogs:    &auditLogsRepo{pool},
	}
}
