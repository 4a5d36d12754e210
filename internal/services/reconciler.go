package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cribnhq/cribn-backend/internal/gateway/paystack"
	"github.com/cribnhq/cribn-backend/internal/metrics"
	"github.com/cribnhq/cribn-backend/internal/models"
	repo "github.com/cribnhq/cribn-backend/internal/repository"
	"github.com/cribnhq/cribn-backend/internal/worker"
)

// eventKind is the closed set of webhook events the reconciler acts on.
// Everything else is acknowledged and ignored so the gateway stops
// retrying.
type eventKind int

const (
	kindUnknown eventKind = iota
	kindChargeSuccess
	kindTransferSuccess
	kindChargeFailed
	kindTransferFailed
)

func kindOf(event string) eventKind {
	switch event {
	case "charge.success":
		return kindChargeSuccess
	case "transfer.success":
		return kindTransferSuccess
	case "charge.failed":
		return kindChargeFailed
	case "transfer.failed":
		return kindTransferFailed
	}
	return kindUnknown
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID        json.Number `json:"id"`
		Reference string      `json:"reference"`
	} `json:"data"`
}

// Reconciler is the only component allowed to move a transaction out of
// pending. It runs once per inbound gateway callback; concurrent
// callbacks never contend because each touches only its own reference.
type Reconciler struct {
	trx    repo.WalletTransactions
	log    repo.AuditLogs
	wp     *worker.Pool
	secret string
}

func NewReconciler(trx repo.WalletTransactions, log repo.AuditLogs, wp *worker.Pool, webhookSecret string) *Reconciler {
	return &Reconciler{trx: trx, log: log, wp: wp, secret: webhookSecret}
}

// Handle verifies, dispatches and settles a raw webhook delivery.
// Signature mismatch is the only error worth refusing the request for;
// anything past authentication is logged and acknowledged so the
// gateway does not back off the endpoint.
func (r *Reconciler) Handle(ctx context.Context, body []byte, signature string) error {
	if !paystack.VerifySignature(r.secret, body, signature) {
		slog.Error("webhook signature mismatch")
		metrics.WebhookEvents.WithLabelValues("unknown", "unverified").Inc()
		return ErrUnverifiedSource
	}

	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedEvent, err)
	}

	kind := kindOf(ev.Event)

	var status models.TransactionStatus
	switch kind {
	case kindChargeSuccess, kindTransferSuccess:
		status = models.TxnCompleted
	case kindChargeFailed, kindTransferFailed:
		status = models.TxnFailed
	case kindUnknown:
		// label with a fixed value, not the raw event name, to keep the
		// metric's cardinality bounded
		metrics.WebhookEvents.WithLabelValues("unknown", "ignored").Inc()
		return nil
	}

	tx, matched, err := r.trx.Settle(ctx, ev.Data.Reference, status, ev.Data.ID.String())
	if err != nil {
		// Ack anyway; a non-200 here triggers retry storms and
		// eventually gets the endpoint disabled.
		slog.Error("webhook settlement failed", "event", ev.Event, "reference", ev.Data.Reference, "err", err)
		metrics.WebhookEvents.WithLabelValues(ev.Event, "error").Inc()
		return nil
	}
	if !matched {
		// No pending row for this reference: either a replay (already
		// settled) or an inconsistency. Log, never mutate.
		slog.Warn("webhook matched no pending transaction", "event", ev.Event, "reference", ev.Data.Reference)
		metrics.WebhookEvents.WithLabelValues(ev.Event, "miss").Inc()
		return nil
	}

	metrics.WebhookEvents.WithLabelValues(ev.Event, "settled").Inc()
	slog.Info("transaction settled", "reference", tx.ExternalReference, "status", tx.Status, "type", tx.Type)

	txID := tx.ID
	r.wp.Submit(func() {
		_ = r.log.Create(models.AuditLog{
			EntityType: "wallet_transaction",
			EntityID:   &txID,
			Action:     "status_change",
			Details:    map[string]any{"message": fmt.Sprintf("%s: %s", tx.Status, ev.Event)},
		})
	})
	return nil
}
