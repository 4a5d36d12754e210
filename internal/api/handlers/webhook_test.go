package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cribnhq/cribn-backend/internal/gateway/paystack"
	"github.com/cribnhq/cribn-backend/internal/models"
	"github.com/cribnhq/cribn-backend/internal/services"
	"github.com/cribnhq/cribn-backend/internal/worker"
)

const testSecret = "whsec_handler_test"

type memTransactions struct {
	mu   sync.Mutex
	rows map[string]models.WalletTransaction
}

func (m *memTransactions) Create(tx models.WalletTransaction) (models.WalletTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[tx.ExternalReference] = tx
	return tx, nil
}

func (m *memTransactions) GetByReference(ref string) (models.WalletTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[ref], nil
}

func (m *memTransactions) ListByUser(string, []models.TransactionType, int, int) ([]models.WalletTransaction, error) {
	return nil, nil
}

func (m *memTransactions) Settle(_ context.Context, ref string, status models.TransactionStatus, extID string) (models.WalletTransaction, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.rows[ref]
	if !ok || tx.Status != models.TxnPending {
		return models.WalletTransaction{}, false, nil
	}
	tx.Status = status
	if extID != "" {
		tx.ExternalTransactionID = &extID
	}
	m.rows[ref] = tx
	return tx, true, nil
}

type memAudit struct{}

func (memAudit) Create(models.AuditLog) error { return nil }

func newWebhookServer(t *testing.T) (*httptest.Server, *memTransactions) {
	t.Helper()
	trx := &memTransactions{rows: map[string]models.WalletTransaction{}}
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)
	rec := services.NewReconciler(trx, memAudit{}, wp, testSecret)
	h := NewWebhookHandler(rec)
	srv := httptest.NewServer(http.HandlerFunc(h.Paystack))
	t.Cleanup(srv.Close)
	return srv, trx
}

func post(t *testing.T, url string, body []byte, sig string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("x-paystack-signature", sig)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPaystackWebhookSettlesAndAcks(t *testing.T) {
	srv, trx := newWebhookServer(t)
	_, err := trx.Create(models.WalletTransaction{
		ExternalReference: "topup_9_abcd1234", Status: models.TxnPending, Type: models.TxnTopUp, Amount: 500,
	})
	require.NoError(t, err)

	body := []byte(`{"event":"charge.success","data":{"id":123,"reference":"topup_9_abcd1234"}}`)
	resp := post(t, srv.URL, body, paystack.Sign(testSecret, body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	tx, _ := trx.GetByReference("topup_9_abcd1234")
	assert.Equal(t, models.TxnCompleted, tx.Status)
}

func TestPaystackWebhookRejectsBadSignature(t *testing.T) {
	srv, trx := newWebhookServer(t)
	_, err := trx.Create(models.WalletTransaction{
		ExternalReference: "topup_9_abcd1234", Status: models.TxnPending,
	})
	require.NoError(t, err)

	body := []byte(`{"event":"charge.success","data":{"id":123,"reference":"topup_9_abcd1234"}}`)
	resp := post(t, srv.URL, body, "deadbeef")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	tx, _ := trx.GetByReference("topup_9_abcd1234")
	assert.Equal(t, models.TxnPending, tx.Status)
}

func TestPaystackWebhookAcksUnknownEvents(t *testing.T) {
	srv, _ := newWebhookServer(t)
	body := []byte(`{"event":"invoice.create","data":{"id":1,"reference":"whatever"}}`)
	resp := post(t, srv.URL, body, paystack.Sign(testSecret, body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPaystackWebhookMalformedBodyIsServerError(t *testing.T) {
	srv, _ := newWebhookServer(t)
	body := []byte(`{not json`)
	resp := post(t, srv.URL, body, paystack.Sign(testSecret, body))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestPaystackWebhookReplayIsANoOpAck(t *testing.T) {
	srv, trx := newWebhookServer(t)
	_, err := trx.Create(models.WalletTransaction{
		ExternalReference: "withdrawal_3_abcd1234", Status: models.TxnPending, Type: models.TxnWithdrawal, Amount: 700,
	})
	require.NoError(t, err)

	body := []byte(`{"event":"transfer.success","data":{"id":55,"reference":"withdrawal_3_abcd1234"}}`)
	sig := paystack.Sign(testSecret, body)
	for i := 0; i < 2; i++ {
		resp := post(t, srv.URL, body, sig)
		assert.Equal(t, http.StatusOK, resp.StatusCode, fmt.Sprintf("delivery %d", i+1))
	}
	tx, _ := trx.GetByReference("withdrawal_3_abcd1234")
	assert.Equal(t, models.TxnCompleted, tx.Status)
}
