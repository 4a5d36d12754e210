package repository

import (
	"context"

	"github.com/cribnhq/cribn-backend/internal/models"
)

type Users interface {
	Create(username, email, passwordHash, role string) (models.User, error)
	GetByID(id string) (models.User, error)
	GetByEmail(email string) (models.User, error)
}

type Wallets interface {
	GetOrCreate(userID string) (models.Wallet, error)
	GetByID(id string) (models.Wallet, error)
}

type WalletTransactions interface {
	Create(tx models.WalletTransaction) (models.WalletTransaction, error)
	GetByReference(reference string) (models.WalletTransaction, error)
	ListByUser(userID string, types []models.TransactionType, limit, offset int) ([]models.WalletTransaction, error)

	// Settle flips a pending row to its final status and applies the
	// balance delta to the owning wallet in one DB transaction. The
	// bool reports whether a pending row matched the reference; a
	// replayed event matches nothing and changes nothing.
	Settle(ctx context.Context, reference string, status models.TransactionStatus, externalTxnID string) (models.WalletTransaction, bool, error)
}

type Events interface {
	Create(ev models.Event) (models.Event, error)
	GetByID(id string) (models.Event, error)
	ListPublished(limit, offset int) ([]models.Event, error)
}

type EventTickets interface {
	Create(t models.EventTicket) (models.EventTicket, error)
	CodeExists(code string) (bool, error)
	GetByCode(code string) (models.EventTicket, error)
	ListByUser(userID string) ([]models.EventTicket, error)

	// MarkUsed flips is_used exactly once; the bool is false when the
	// ticket was already used.
	MarkUsed(code string) (bool, error)
}

type AuditLogs interface {
	Create(l models.AuditLog) error
}
