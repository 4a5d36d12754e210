package models

import "time"

// EventTicket is written before the checkout session URL is returned to
// the buyer. ExternalSessionID ties the row back to the hosted checkout
// session; TicketCode is generated locally and is unique.
type EventTicket struct {
	ID                string     `json:"id"`
	EventID           string     `json:"event_id"`
	UserID            string     `json:"user_id"`
	TicketCode        string     `json:"ticket_code"`
	PurchasePrice     int64      `json:"purchase_price"`
	ExternalSessionID string     `json:"external_session_id"`
	IsUsed            bool       `json:"is_used"`
	UsedAt            *time.Time `json:"used_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
