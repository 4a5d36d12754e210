package postgres

import (
	"context"

	"github.com/cribnhq/cribn-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type auditLogsRepo struct{ pool *pgxpool.Pool }

// Create is best-effort from the caller's point of view: the worker
// pool invokes it after the payment response has already been sent.
func (r *auditLogsRepo) Create(l models.AuditLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(
		context.Background(),
		`INSERT INTO audit_logs (id, entity_type, entity_id, action, details)
		 VALUES ($1,$2,$3,$4,$5)`,
		l.ID, l.EntityType, l.EntityID, l.Action, l.Details,
	)
	return err
}
