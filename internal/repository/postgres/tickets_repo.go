package postgres

import (
	"context"

	"github.com/cribnhq/cribn-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ticketsRepo struct{ pool *pgxpool.Pool }

const ticketColumns = `id, event_id, user_id, ticket_code, purchase_price,
  external_session_id, is_used, used_at, created_at`

func (r *ticketsRepo) Create(t models.EventTicket) (models.EventTicket, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(
		context.Background(),
		`INSERT INTO event_tickets (id, event_id, user_id, ticket_code, purchase_price, external_session_id)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING `+ticketColumns,
		t.ID, t.EventID, t.UserID, t.TicketCode, t.PurchasePrice, t.ExternalSessionID,
	).Scan(&t.ID, &t.EventID, &t.UserID, &t.TicketCode, &t.PurchasePrice, &t.ExternalSessionID, &t.IsUsed, &t.UsedAt, &t.CreatedAt)
	return t, err
}

func (r *ticketsRepo) CodeExists(code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM event_tickets WHERE ticket_code=$1)`,
		code,
	).Scan(&exists)
	return exists, err
}

func (r *ticketsRepo) GetByCode(code string) (models.EventTicket, error) {
	var t models.EventTicket
	err := r.pool.QueryRow(
		context.Background(),
		`SELECT `+ticketColumns+` FROM event_tickets WHERE ticket_code=$1`,
		code,
	).Scan(&t.ID, &t.EventID, &t.UserID, &t.TicketCode, &t.PurchasePrice, &t.ExternalSessionID, &t.IsUsed, &t.UsedAt, &t.CreatedAt)
	return t, err
}

func (r *ticketsRepo) ListByUser(userID string) ([]models.EventTicket, error) {
	rows, err := r.pool.Query(
		context.Background(),
		`SELECT `+ticketColumns+`
		   FROM event_tickets
		  WHERE user_id=$1
		  ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EventTicket
	for rows.Next() {
		var t models.EventTicket
		if err := rows.Scan(&t.ID, &t.EventID, &t.UserID, &t.TicketCode, &t.PurchasePrice, &t.ExternalSessionID, &t.IsUsed, &t.UsedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ticketsRepo) MarkUsed(code string) (bool, error) {
	tag, err := r.pool.Exec(
		context.Background(),
		`UPDATE event_tickets SET is_used=true, used_at=now()
		  WHERE ticket_code=$1 AND is_used=false`,
		code,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
