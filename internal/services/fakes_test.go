package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cribnhq/cribn-backend/internal/gateway/paystack"
	"github.com/cribnhq/cribn-backend/internal/gateway/stripe"
	"github.com/cribnhq/cribn-backend/internal/models"
)

var errNotFound = errors.New("not found")

type fakeWallets struct {
	mu      sync.Mutex
	wallets map[string]models.Wallet // by wallet id
}

func newFakeWallets() *fakeWallets {
	return &fakeWallets{wallets: map[string]models.Wallet{}}
}

func (f *fakeWallets) GetOrCreate(userID string) (models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.wallets {
		if w.UserID == userID {
			return w, nil
		}
	}
	w := models.Wallet{ID: "wal-" + userID, UserID: userID, Currency: "GHS"}
	f.wallets[w.ID] = w
	return w, nil
}

func (f *fakeWallets) GetByID(id string) (models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[id]
	if !ok {
		return models.Wallet{}, errNotFound
	}
	return w, nil
}

type fakeTransactions struct {
	mu         sync.Mutex
	rows       map[string]models.WalletTransaction // by external reference
	wallets    *fakeWallets
	failCreate bool
}

func newFakeTransactions() *fakeTransactions {
	return &fakeTransactions{rows: map[string]models.WalletTransaction{}, wallets: newFakeWallets()}
}

func (f *fakeTransactions) Create(tx models.WalletTransaction) (models.WalletTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return models.WalletTransaction{}, errors.New("insert failed")
	}
	if _, exists := f.rows[tx.ExternalReference]; exists {
		return models.WalletTransaction{}, errors.New("duplicate reference")
	}
	if tx.ID == "" {
		tx.ID = fmt.Sprintf("txn-%d", len(f.rows)+1)
	}
	f.rows[tx.ExternalReference] = tx
	return tx, nil
}

func (f *fakeTransactions) GetByReference(reference string) (models.WalletTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.rows[reference]
	if !ok {
		return models.WalletTransaction{}, errNotFound
	}
	return tx, nil
}

func (f *fakeTransactions) ListByUser(userID string, types []models.TransactionType, limit, offset int) ([]models.WalletTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WalletTransaction
	for _, tx := range f.rows {
		if tx.UserID != userID {
			continue
		}
		if len(types) > 0 {
			match := false
			for _, t := range types {
				if tx.Type == t {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, tx)
	}
	return out, nil
}

// Settle mirrors the postgres implementation: only a pending row
// matches, and completion applies the balance delta.
func (f *fakeTransactions) Settle(_ context.Context, reference string, status models.TransactionStatus, externalTxnID string) (models.WalletTransaction, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.rows[reference]
	if !ok || tx.Status != models.TxnPending {
		return models.WalletTransaction{}, false, nil
	}
	tx.Status = status
	if externalTxnID != "" {
		tx.ExternalTransactionID = &externalTxnID
	}
	f.rows[reference] = tx

	if status == models.TxnCompleted {
		f.wallets.mu.Lock()
		if w, ok := f.wallets.wallets[tx.WalletID]; ok {
			w.Balance += tx.BalanceDelta()
			f.wallets.wallets[tx.WalletID] = w
		}
		f.wallets.mu.Unlock()
	}
	return tx, true, nil
}

func (f *fakeTransactions) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeAuditLogs struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (f *fakeAuditLogs) Create(l models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, l)
	return nil
}

type fakePaystack struct {
	mu sync.Mutex

	initCalls      int
	recipientCalls int
	transferCalls  int

	initErr      error
	recipientErr error
	transferErr  error

	lastInit paystack.InitializeTransactionRequest
}

func (f *fakePaystack) InitializeTransaction(_ context.Context, req paystack.InitializeTransactionRequest) (paystack.InitializeTransactionData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls++
	f.lastInit = req
	if f.initErr != nil {
		return paystack.InitializeTransactionData{}, f.initErr
	}
	return paystack.InitializeTransactionData{
		AuthorizationURL: "https://checkout.paystack.com/abc123",
		AccessCode:       "abc123",
		Reference:        req.Reference,
	}, nil
}

func (f *fakePaystack) CreateTransferRecipient(_ context.Context, req paystack.CreateTransferRecipientRequest) (paystack.TransferRecipientData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recipientCalls++
	if f.recipientErr != nil {
		return paystack.TransferRecipientData{}, f.recipientErr
	}
	return paystack.TransferRecipientData{RecipientCode: "RCP_test"}, nil
}

func (f *fakePaystack) InitiateTransfer(_ context.Context, req paystack.InitiateTransferRequest) (paystack.TransferData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transferCalls++
	if f.transferErr != nil {
		return paystack.TransferData{}, f.transferErr
	}
	return paystack.TransferData{Reference: req.Reference, TransferCode: "TRF_test"}, nil
}

type fakeTickets struct {
	mu         sync.Mutex
	rows       map[string]models.EventTicket // by ticket code
	collisions int                           // report "exists" for this many CodeExists calls
}

func newFakeTickets() *fakeTickets {
	return &fakeTickets{rows: map[string]models.EventTicket{}}
}

func (f *fakeTickets) Create(t models.EventTicket) (models.EventTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = fmt.Sprintf("tix-%d", len(f.rows)+1)
	}
	f.rows[t.TicketCode] = t
	return t, nil
}

func (f *fakeTickets) CodeExists(code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.collisions > 0 {
		f.collisions--
		return true, nil
	}
	_, ok := f.rows[code]
	return ok, nil
}

func (f *fakeTickets) GetByCode(code string) (models.EventTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[code]
	if !ok {
		return models.EventTicket{}, errNotFound
	}
	return t, nil
}

func (f *fakeTickets) ListByUser(userID string) ([]models.EventTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.EventTicket
	for _, t := range f.rows {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTickets) MarkUsed(code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[code]
	if !ok || t.IsUsed {
		return false, nil
	}
	t.IsUsed = true
	f.rows[code] = t
	return true, nil
}

type fakeEvents struct {
	mu   sync.Mutex
	rows map[string]models.Event
}

func newFakeEvents() *fakeEvents { return &fakeEvents{rows: map[string]models.Event{}} }

func (f *fakeEvents) Create(ev models.Event) (models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ev.ID == "" {
		ev.ID = fmt.Sprintf("evt-%d", len(f.rows)+1)
	}
	f.rows[ev.ID] = ev
	return ev, nil
}

func (f *fakeEvents) GetByID(id string) (models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.rows[id]
	if !ok {
		return models.Event{}, errNotFound
	}
	return ev, nil
}

func (f *fakeEvents) ListPublished(limit, offset int) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Event
	for _, ev := range f.rows {
		if ev.Status == models.EventPublished {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeStripe struct {
	mu sync.Mutex

	customerCalls int
	sessionCalls  int

	customerID  string
	customerErr error
	sessionErr  error

	lastParams stripe.CheckoutSessionParams
}

func (f *fakeStripe) FindCustomerByEmail(_ context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customerCalls++
	return f.customerID, f.customerErr
}

func (f *fakeStripe) CreateCheckoutSession(_ context.Context, p stripe.CheckoutSessionParams) (stripe.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionCalls++
	f.lastParams = p
	if f.sessionErr != nil {
		return stripe.CheckoutSession{}, f.sessionErr
	}
	return stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/c/pay/cs_test_123"}, nil
}
