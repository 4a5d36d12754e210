package models

import "time"

// Wallet holds a cached balance in the minor currency unit (pesewas).
// The balance is only adjusted by the webhook reconciler when a
// transaction settles; initiation flows never touch it.
type Wallet struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Balance   int64     `json:"balance"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
