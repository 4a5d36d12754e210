package models

import "time"

type TransactionType string

const (
	TxnTopUp      TransactionType = "top_up"
	TxnWithdrawal TransactionType = "withdrawal"
	TxnSpending   TransactionType = "spending"
	TxnEarning    TransactionType = "earning"
	TxnRefund     TransactionType = "refund"
)

type TransactionStatus string

const (
	TxnPending   TransactionStatus = "pending"
	TxnCompleted TransactionStatus = "completed"
	TxnFailed    TransactionStatus = "failed"
	TxnCancelled TransactionStatus = "cancelled"
)

type PaymentMethod string

const (
	MethodMTNMomo       PaymentMethod = "mtn_momo"
	MethodVodafoneCash  PaymentMethod = "vodafone_cash"
	MethodAirtelTigo    PaymentMethod = "airteltigo_money"
	MethodBankCard      PaymentMethod = "bank_card"
	MethodBankTransfer  PaymentMethod = "bank_transfer"
)

// WalletTransaction is the ledger row for a single money movement.
// ExternalReference is assigned locally at creation and is the
// correlation key for inbound webhook events; it is never reused.
type WalletTransaction struct {
	ID                    string            `json:"id"`
	WalletID              string            `json:"wallet_id"`
	UserID                string            `json:"user_id"`
	Type                  TransactionType   `json:"type"`
	Amount                int64             `json:"amount"`
	Status                TransactionStatus `json:"status"`
	PaymentMethod         *PaymentMethod    `json:"payment_method,omitempty"`
	ExternalReference     string            `json:"external_reference"`
	ExternalTransactionID *string           `json:"external_transaction_id,omitempty"`
	Description           string            `json:"description"`
	Metadata              map[string]any    `json:"metadata,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// BalanceDelta is the signed effect a completed transaction has on the
// wallet balance.
func (t *WalletTransaction) BalanceDelta() int64 {
	switch t.Type {
	case TxnTopUp, TxnEarning, TxnRefund:
		return t.Amount
	case TxnWithdrawal, TxnSpending:
		return -t.Amount
	}
	return 0
}
