package models

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

type Event struct {
	ID          string      `json:"id"`
	OrganizerID string      `json:"organizer_id"`
	Title       string      `json:"title"`
	Venue       string      `json:"venue"`
	TicketPrice int64       `json:"ticket_price"`
	Status      EventStatus `json:"status"`
	StartsAt    *time.Time  `json:"starts_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
