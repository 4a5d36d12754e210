package postgres

import (
	"context"

	"github.com/cribnhq/cribn-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type eventsRepo struct{ pool *pgxpool.Pool }

func (r *eventsRepo) Create(ev models.Event) (models.Event, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(
		context.Background(),
		`INSERT INTO events (id, organizer_id, title, venue, ticket_price, status, starts_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING id, organizer_id, title, venue, ticket_price, status, starts_at, created_at, updated_at`,
		ev.ID, ev.OrganizerID, ev.Title, ev.Venue, ev.TicketPrice, ev.Status, ev.StartsAt,
	).Scan(&ev.ID, &ev.OrganizerID, &ev.Title, &ev.Venue, &ev.TicketPrice, &ev.Status, &ev.StartsAt, &ev.CreatedAt, &ev.UpdatedAt)
	return ev, err
}

func (r *eventsRepo) GetByID(id string) (models.Event, error) {
	var ev models.Event
	err := r.pool.QueryRow(
		context.Background(),
		`SELECT id, organizer_id, title, venue, ticket_price, status, starts_at, created_at, updated_at
		   FROM events WHERE id=$1`,
		id,
	).Scan(&ev.ID, &ev.OrganizerID, &ev.Title, &ev.Venue, &ev.TicketPrice, &ev.Status, &ev.StartsAt, &ev.CreatedAt, &ev.UpdatedAt)
	return ev, err
}

func (r *eventsRepo) ListPublished(limit, offset int) ([]models.Event, error) {
	rows, err := r.pool.Query(
		context.Background(),
		`SELECT id, organizer_id, title, venue, ticket_price, status, starts_at, created_at, updated_at
		   FROM events
		  WHERE status='published'
		  ORDER BY starts_at NULLS LAST
		  LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		var ev models.Event
		if err := rows.Scan(&ev.ID, &ev.OrganizerID, &ev.Title, &ev.Venue, &ev.TicketPrice, &ev.Status, &ev.StartsAt, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
