package postgres

import (
	"context"

	"github.com/cribnhq/cribn-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type walletsRepo struct{ pool *pgxpool.Pool }

func (r *walletsRepo) GetOrCreate(userID string) (models.Wallet, error) {
	if w, err := r.getByUser(userID); err == nil {
		return w, nil
	}
	_, err := r.pool.Exec(
		context.Background(),
		`INSERT INTO user_wallets(id, user_id) VALUES($1, $2)
		 ON CONFLICT (user_id) DO NOTHING`,
		uuid.NewString(), userID,
	)
	if err != nil {
		return models.Wallet{}, err
	}
	return r.getByUser(userID)
}

func (r *walletsRepo) getByUser(userID string) (models.Wallet, error) {
	var w models.Wallet
	err := r.pool.QueryRow(
		context.Background(),
		`SELECT id, user_id, balance, currency, created_at, updated_at
		   FROM user_wallets
		  WHERE user_id=$1`,
		userID,
	).Scan(&w.ID, &w.UserID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

func (r *walletsRepo) GetByID(id string) (models.Wallet, error) {
	var w models.Wallet
	err := r.pool.QueryRow(
		context.Background(),
		`SELECT id, user_id, balance, currency, created_at, updated_at
		   FROM user_wallets
		  WHERE id=$1`,
		id,
	).Scan(&w.ID, &w.UserID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}
