package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cribnhq/cribn-backend/internal/gateway/paystack"
	"github.com/cribnhq/cribn-backend/internal/metrics"
	"github.com/cribnhq/cribn-backend/internal/models"
	repo "github.com/cribnhq/cribn-backend/internal/repository"
	"github.com/cribnhq/cribn-backend/internal/worker"
)

type WalletService struct {
	wallets repo.Wallets
	trx     repo.WalletTransactions
	log     repo.AuditLogs
	gw      PaystackGateway
	wp      *worker.Pool

	appBaseURL string
}

func NewWalletService(w repo.Wallets, t repo.WalletTransactions, l repo.AuditLogs, gw PaystackGateway, wp *worker.Pool, appBaseURL string) *WalletService {
	return &WalletService{wallets: w, trx: t, log: l, gw: gw, wp: wp, appBaseURL: appBaseURL}
}

func (s *WalletService) audit(entityID, action, details string) {
	id := entityID
	s.wp.Submit(func() {
		var det map[string]any
		if details != "" {
			det = map[string]any{"message": details}
		}
		_ = s.log.Create(models.AuditLog{
			EntityType: "wallet_transaction",
			EntityID:   &id,
			Action:     action,
			Details:    det,
		})
	})
}

func (s *WalletService) Current(userID string) (models.Wallet, error) { return s.wallets.GetOrCreate(userID) }

// ListTransactions applies the wallet page's filter groups: spending
// covers money out, earning covers money in.
func (s *WalletService) ListTransactions(userID, filter string, limit, offset int) ([]models.WalletTransaction, error) {
	var types []models.TransactionType
	switch filter {
	case "spending":
		types = []models.TransactionType{models.TxnSpending, models.TxnWithdrawal}
	case "earning":
		types = []models.TransactionType{models.TxnEarning, models.TxnTopUp, models.TxnRefund}
	}
	return s.trx.ListByUser(userID, types, limit, offset)
}

type TopUpResult struct {
	AuthorizationURL string
	Reference        string
}

// newReference builds the locally generated idempotent reference that
// webhook events are later matched against. The random tail keeps two
// submissions by the same user in the same millisecond from colliding
// on the unique reference column.
func newReference(kind, userID string) string {
	prefix := userID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("%s_%d_%s_%06x", kind, time.Now().UnixMilli(), prefix, rand.Intn(1<<24))
}

func (s *WalletService) InitiateTopUp(ctx context.Context, user models.User, amount int64, method models.PaymentMethod, walletID string) (TopUpResult, error) {
	if amount <= 0 {
		return TopUpResult{}, ErrInvalidAmount
	}

	channels := []string{"mobile_money"}
	if method == models.MethodBankCard {
		channels = []string{"card"}
	}

	data, err := s.gw.InitializeTransaction(ctx, paystack.InitializeTransactionRequest{
		Email:       user.Email,
		Amount:      amount,
		Currency:    "GHS",
		Reference:   newReference("topup", user.ID),
		CallbackURL: s.appBaseURL + "/wallet",
		Metadata: map[string]any{
			"user_id":        user.ID,
			"wallet_id":      walletID,
			"payment_method": string(method),
			"type":           "top_up",
		},
		Channels: channels,
	})
	if err != nil {
		metrics.PaymentsFailed.WithLabelValues("top_up").Inc()
		return TopUpResult{}, fmt.Errorf("%w: %s", ErrGatewayRejected, gatewayMessage(err))
	}

	// Record the pending intent under the reference the gateway echoed
	// back; the webhook matches on that string.
	tx, err := s.trx.Create(models.WalletTransaction{
		WalletID:          walletID,
		UserID:            user.ID,
		Type:              models.TxnTopUp,
		Amount:            amount,
		Status:            models.TxnPending,
		PaymentMethod:     &method,
		ExternalReference: data.Reference,
		Description:       "Wallet top-up",
	})
	if err != nil {
		// Funds flow may already have started at the processor. Never
		// drop this silently.
		slog.Error("top-up initiated but pending row write failed; needs manual reconciliation",
			"reference", data.Reference, "user_id", user.ID, "amount", amount, "err", err)
		return TopUpResult{}, err
	}

	metrics.PaymentsInitiated.WithLabelValues("top_up").Inc()
	s.audit(tx.ID, "created", "top-up initiated")
	return TopUpResult{AuthorizationURL: data.AuthorizationURL, Reference: data.Reference}, nil
}

type AccountDetails struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BankCode      string `json:"bank_code,omitempty"`
}

func (s *WalletService) InitiateWithdrawal(ctx context.Context, user models.User, amount int64, destination models.PaymentMethod, account AccountDetails, walletID string) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	recipientType := "mobile_money"
	if destination == models.MethodBankTransfer {
		recipientType = "ghipss"
	}
	bankCode := account.BankCode
	if bankCode == "" {
		if destination == models.MethodMTNMomo {
			bankCode = "MTN"
		} else {
			bankCode = "VOD"
		}
	}

	recipient, err := s.gw.CreateTransferRecipient(ctx, paystack.CreateTransferRecipientRequest{
		Type:          recipientType,
		Name:          account.AccountName,
		AccountNumber: account.AccountNumber,
		BankCode:      bankCode,
		Currency:      "GHS",
	})
	if err != nil {
		metrics.PaymentsFailed.WithLabelValues("withdrawal").Inc()
		return "", fmt.Errorf("%w: %s", ErrRecipientCreation, gatewayMessage(err))
	}

	transfer, err := s.gw.InitiateTransfer(ctx, paystack.InitiateTransferRequest{
		Source:    "balance",
		Amount:    amount,
		Recipient: recipient.RecipientCode,
		Reason:    "Wallet withdrawal",
		Reference: newReference("withdrawal", user.ID),
	})
	if err != nil {
		metrics.PaymentsFailed.WithLabelValues("withdrawal").Inc()
		// The recipient registration is not cleaned up; keep the code
		// around for manual follow-up.
		slog.Warn("transfer failed after recipient creation",
			"recipient_code", recipient.RecipientCode, "user_id", user.ID, "err", err)
		return "", fmt.Errorf("%w: %s", ErrTransferInitiation, gatewayMessage(err))
	}

	tx, err := s.trx.Create(models.WalletTransaction{
		WalletID:          walletID,
		UserID:            user.ID,
		Type:              models.TxnWithdrawal,
		Amount:            amount,
		Status:            models.TxnPending,
		PaymentMethod:     &destination,
		ExternalReference: transfer.Reference,
		Description:       "Withdrawal to " + account.AccountName,
		Metadata: map[string]any{
			"recipient_code": recipient.RecipientCode,
			"transfer_code":  transfer.TransferCode,
		},
	})
	if err != nil {
		slog.Error("withdrawal initiated but pending row write failed; needs manual reconciliation",
			"reference", transfer.Reference, "user_id", user.ID, "amount", amount, "err", err)
		return "", err
	}

	metrics.PaymentsInitiated.WithLabelValues("withdrawal").Inc()
	s.audit(tx.ID, "created", "withdrawal initiated")
	return transfer.Reference, nil
}

// gatewayMessage surfaces the processor's message when there is one.
func gatewayMessage(err error) string {
	var apiErr *paystack.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
