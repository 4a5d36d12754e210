package models

import "time"

// AuditLog is the payment lifecycle trail: one row per initiation or
// settlement status change, written off the request path by the worker
// pool. EntityID points at the wallet transaction (or ticket) the entry
// describes.
type AuditLog struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   *string        `json:"entity_id,omitempty"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
