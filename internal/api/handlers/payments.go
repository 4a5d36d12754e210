package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cribnhq/cribn-backend/internal/api/httpx"
	"github.com/cribnhq/cribn-backend/internal/api/validate"
	"github.com/cribnhq/cribn-backend/internal/middleware"
	"github.com/cribnhq/cribn-backend/internal/models"
	"github.com/cribnhq/cribn-backend/internal/services"
)

// paystackEnvelope mirrors the shape the wallet UI consumes from the
// top-up and withdrawal endpoints.
type paystackEnvelope struct {
	Status           bool   `json:"status"`
	Message          string `json:"message,omitempty"`
	AuthorizationURL string `json:"authorization_url,omitempty"`
	Reference        string `json:"reference,omitempty"`
}

type PaymentHandler struct {
	wallets *services.WalletService
	users   *services.UserService
}

func NewPaymentHandler(ws *services.WalletService, us *services.UserService) *PaymentHandler {
	return &PaymentHandler{wallets: ws, users: us}
}

// currentUser resolves the authed user row; the gateway needs the email.
func (h *PaymentHandler) currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	uc, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "user not authenticated", nil)
		return models.User{}, false
	}
	u, err := h.users.GetByID(uc.UserID)
	if err != nil || u.Email == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "user not authenticated", nil)
		return models.User{}, false
	}
	return u, true
}

type topUpReq struct {
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	WalletID      string `json:"wallet_id"`
}

func (h *PaymentHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	var req topUpReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, paystackEnvelope{Status: false, Message: "invalid request body"})
		return
	}

	res, err := h.wallets.InitiateTopUp(r.Context(), user, req.Amount, models.PaymentMethod(req.PaymentMethod), req.WalletID)
	if err != nil {
		writePaymentError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, paystackEnvelope{
		Status:           true,
		AuthorizationURL: res.AuthorizationURL,
		Reference:        res.Reference,
	})
}

type withdrawalReq struct {
	Amount         int64                   `json:"amount"`
	Destination    string                  `json:"destination"`
	AccountDetails services.AccountDetails `json:"account_details"`
	WalletID       string                  `json:"wallet_id"`
}

func (h *PaymentHandler) Withdrawal(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	var req withdrawalReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, paystackEnvelope{Status: false, Message: "invalid request body"})
		return
	}
	if errs := validate.Collect(
		validate.Required("account_number", req.AccountDetails.AccountNumber),
		validate.Required("account_name", req.AccountDetails.AccountName),
		validate.MinInt("amount", req.Amount, 1),
	); len(errs) > 0 {
		httpx.WriteJSON(w, http.StatusBadRequest, paystackEnvelope{Status: false, Message: errs.Error()})
		return
	}

	reference, err := h.wallets.InitiateWithdrawal(r.Context(), user, req.Amount, models.PaymentMethod(req.Destination), req.AccountDetails, req.WalletID)
	if err != nil {
		writePaymentError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, paystackEnvelope{
		Status:    true,
		Message:   "Withdrawal initiated successfully",
		Reference: reference,
	})
}

// pageParams reads limit/offset query params with sane defaults.
func pageParams(r *http.Request) (limit, offset int) {
	limit, offset = 50, 0
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		limit = n
	}
	if n, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && n >= 0 {
		offset = n
	}
	return limit, offset
}

func writePaymentError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, services.ErrInvalidAmount) || errors.Is(err, services.ErrMissingField) {
		status = http.StatusBadRequest
	}
	httpx.WriteJSON(w, status, paystackEnvelope{Status: false, Message: err.Error()})
}

func (h *PaymentHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	uc, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "user not authenticated", nil)
		return
	}
	wallet, err := h.wallets.Current(uc.UserID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to load wallet", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wallet)
}

func (h *PaymentHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	uc, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "user not authenticated", nil)
		return
	}

	limit, offset := pageParams(r)
	txs, err := h.wallets.ListTransactions(uc.UserID, r.URL.Query().Get("filter"), limit, offset)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to load transactions", nil)
		return
	}
	if txs == nil {
		txs = []models.WalletTransaction{}
	}
	httpx.WriteJSON(w, http.StatusOK, txs)
}
