package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/cribnhq/cribn-backend/internal/api/httpx"
	"github.com/cribnhq/cribn-backend/internal/services"
)

type WebhookHandler struct {
	reconciler *services.Reconciler
}

func NewWebhookHandler(rec *services.Reconciler) *WebhookHandler {
	return &WebhookHandler{reconciler: rec}
}

// Paystack answers webhooks in plain text. Only a signature mismatch
// refuses the delivery; everything else is acknowledged.
func (h *WebhookHandler) Paystack(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.WriteText(w, http.StatusInternalServerError, "Server Error")
		return
	}

	err = h.reconciler.Handle(r.Context(), body, r.Header.Get("x-paystack-signature"))
	switch {
	case err == nil:
		httpx.WriteText(w, http.StatusOK, "OK")
	case errors.Is(err, services.ErrUnverifiedSource):
		httpx.WriteText(w, http.StatusBadRequest, "Invalid signature")
	default:
		httpx.WriteText(w, http.StatusInternalServerError, "Server Error")
	}
}
