package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/cribnhq/cribn-backend/internal/api/httpx"
	"github.com/cribnhq/cribn-backend/internal/api/validate"
	"github.com/cribnhq/cribn-backend/internal/middleware"
	"github.com/cribnhq/cribn-backend/internal/models"
	"github.com/cribnhq/cribn-backend/internal/services"
)

type EventHandler struct {
	events  *services.EventService
	tickets *services.TicketService
	users   *services.UserService
}

func NewEventHandler(es *services.EventService, ts *services.TicketService, us *services.UserService) *EventHandler {
	return &EventHandler{events: es, tickets: ts, users: us}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	evs, err := h.events.List(limit, offset)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to load events", nil)
		return
	}
	if evs == nil {
		evs = []models.Event{}
	}
	httpx.WriteJSON(w, http.StatusOK, evs)
}

type createEventReq struct {
	Title       string `json:"title"`
	Venue       string `json:"venue"`
	TicketPrice int64  `json:"ticket_price"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	uc, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "user not authenticated", nil)
		return
	}
	var req createEventReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	if errs := validate.Collect(
		validate.Required("title", req.Title),
		validate.MinInt("ticket_price", req.TicketPrice, 0),
	); len(errs) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", errs.Error(), errs)
		return
	}
	ev, err := h.events.Create(uc.UserID, req.Title, req.Venue, req.TicketPrice)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to create event", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, ev)
}

type purchaseTicketReq struct {
	EventID string `json:"event_id"`
	Amount  int64  `json:"amount"`
}

// PurchaseTicket returns the hosted checkout URL the buyer is sent to.
func (h *EventHandler) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	uc, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "user not authenticated"})
		return
	}
	user, err := h.users.GetByID(uc.UserID)
	if err != nil || user.Email == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "user not authenticated or email not available"})
		return
	}

	var req purchaseTicketReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	url, err := h.tickets.PurchaseTicket(r.Context(), user, req.EventID, req.Amount)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidAmount) || errors.Is(err, services.ErrMissingField) {
			status = http.StatusBadRequest
		}
		httpx.WriteJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *EventHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	uc, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "user not authenticated", nil)
		return
	}
	ts, err := h.tickets.ListByUser(uc.UserID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "failed to load tickets", nil)
		return
	}
	if ts == nil {
		ts = []models.EventTicket{}
	}
	httpx.WriteJSON(w, http.StatusOK, ts)
}

// CheckIn flips is_used exactly once; a second scan gets a 409.
func (h *EventHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	t, err := h.tickets.CheckIn(code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketUsed):
			httpx.WriteError(w, http.StatusConflict, "ticket_used", "ticket already used", nil)
		case errors.Is(err, pgx.ErrNoRows):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "ticket not found", nil)
		default:
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "check-in failed", nil)
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}
