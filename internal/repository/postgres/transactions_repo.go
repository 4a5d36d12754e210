package postgres

import (
	"context"
	"errors"

	"github.com/cribnhq/cribn-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

const txnColumns = `id, wallet_id, user_id, type, amount, status, payment_method,
  external_reference, external_transaction_id, description, metadata, created_at, updated_at`

func scanTxn(row pgx.Row) (models.WalletTransaction, error) {
	var tx models.WalletTransaction
	err := row.Scan(
		&tx.ID, &tx.WalletID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Status,
		&tx.PaymentMethod, &tx.ExternalReference, &tx.ExternalTransactionID,
		&tx.Description, &tx.Metadata, &tx.CreatedAt, &tx.UpdatedAt,
	)
	return tx, err
}

func (r *transactionsRepo) Create(tx models.WalletTransaction) (models.WalletTransaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	return scanTxn(r.pool.QueryRow(
		context.Background(),
		`INSERT INTO wallet_transactions (
		   id, wallet_id, user_id, type, amount, status, payment_method,
		   external_reference, description, metadata
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING `+txnColumns,
		tx.ID, tx.WalletID, tx.UserID, tx.Type, tx.Amount, tx.Status,
		tx.PaymentMethod, tx.ExternalReference, tx.Description, tx.Metadata,
	))
}

func (r *transactionsRepo) GetByReference(reference string) (models.WalletTransaction, error) {
	return scanTxn(r.pool.QueryRow(
		context.Background(),
		`SELECT `+txnColumns+` FROM wallet_transactions WHERE external_reference=$1`,
		reference,
	))
}

func (r *transactionsRepo) ListByUser(userID string, types []models.TransactionType, limit, offset int) ([]models.WalletTransaction, error) {
	q := `SELECT ` + txnColumns + `
	        FROM wallet_transactions
	       WHERE user_id=$1`
	args := []any{userID}
	if len(types) > 0 {
		q += ` AND type = ANY($2)
	       ORDER BY created_at DESC
	       LIMIT $3 OFFSET $4`
		ts := make([]string, len(types))
		for i, t := range types {
			ts[i] = string(t)
		}
		args = append(args, ts, limit, offset)
	} else {
		q += `
	       ORDER BY created_at DESC
	       LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(context.Background(), q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.WalletTransaction
	for rows.Next() {
		tx, err := scanTxn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// Settle runs the status flip and the wallet balance adjustment in one
// serializable transaction. The status='pending' guard makes webhook
// replays a no-op.
func (r *transactionsRepo) Settle(ctx context.Context, reference string, status models.TransactionStatus, externalTxnID string) (models.WalletTransaction, bool, error) {
	dbtx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return models.WalletTransaction{}, false, err
	}
	defer func() { _ = dbtx.Rollback(ctx) }()

	var extID *string
	if externalTxnID != "" {
		extID = &externalTxnID
	}
	tx, err := scanTxn(dbtx.QueryRow(ctx,
		`UPDATE wallet_transactions
		    SET status=$2,
		        external_transaction_id=COALESCE($3, external_transaction_id),
		        updated_at=now()
		  WHERE external_reference=$1 AND status='pending'
		  RETURNING `+txnColumns,
		reference, status, extID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.WalletTransaction{}, false, nil
	}
	if err != nil {
		return models.WalletTransaction{}, false, err
	}

	if status == models.TxnCompleted {
		if delta := tx.BalanceDelta(); delta != 0 {
			if _, err := dbtx.Exec(ctx,
				`UPDATE user_wallets SET balance = balance + $2, updated_at = now() WHERE id=$1`,
				tx.WalletID, delta,
			); err != nil {
				return models.WalletTransaction{}, false, err
			}
		}
	}

	if err := dbtx.Commit(ctx); err != nil {
		return models.WalletTransaction{}, false, err
	}
	return tx, true, nil
}
