package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/cribnhq/cribn-backend/internal/gateway/stripe"
	"github.com/cribnhq/cribn-backend/internal/metrics"
	"github.com/cribnhq/cribn-backend/internal/models"
	repo "github.com/cribnhq/cribn-backend/internal/repository"
)

const (
	ticketCodeCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	ticketCodeLength   = 8
	ticketCodeAttempts = 5
)

type TicketService struct {
	tickets repo.EventTickets
	events  repo.Events
	gw      StripeGateway

	appBaseURL string
}

func NewTicketService(t repo.EventTickets, e repo.Events, gw StripeGateway, appBaseURL string) *TicketService {
	return &TicketService{tickets: t, events: e, gw: gw, appBaseURL: appBaseURL}
}

// issueCode generates a TIX- code and retries on collision instead of
// trusting eight random characters to stay unique forever.
func (s *TicketService) issueCode() (string, error) {
	for i := 0; i < ticketCodeAttempts; i++ {
		b := make([]byte, ticketCodeLength)
		for j := range b {
			b[j] = ticketCodeCharset[rand.Intn(len(ticketCodeCharset))]
		}
		code := "TIX-" + string(b)

		exists, err := s.tickets.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrTicketCodes
}

// PurchaseTicket creates the hosted checkout session and persists the
// pre-payment ticket row, returning the session URL the buyer is
// redirected to.
func (s *TicketService) PurchaseTicket(ctx context.Context, user models.User, eventID string, amount int64) (string, error) {
	if eventID == "" {
		return "", fmt.Errorf("%w: event_id", ErrMissingField)
	}
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	ev, err := s.events.GetByID(eventID)
	if err != nil {
		return "", err
	}

	customerID, err := s.gw.FindCustomerByEmail(ctx, user.Email)
	if err != nil {
		metrics.PaymentsFailed.WithLabelValues("ticket").Inc()
		return "", fmt.Errorf("%w: %s", ErrCheckoutSession, err)
	}

	code, err := s.issueCode()
	if err != nil {
		return "", err
	}

	params := stripe.CheckoutSessionParams{
		CustomerID:  customerID,
		Currency:    "usd",
		ProductName: "Event Ticket",
		Description: "Ticket for " + ev.Title,
		UnitAmount:  amount,
		SuccessURL:  s.appBaseURL + "/events/ticket-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   s.appBaseURL + "/events",
		Metadata: map[string]string{
			"event_id":    eventID,
			"user_id":     user.ID,
			"ticket_code": code,
		},
	}
	if customerID == "" {
		params.CustomerEmail = user.Email
	}

	session, err := s.gw.CreateCheckoutSession(ctx, params)
	if err != nil {
		metrics.PaymentsFailed.WithLabelValues("ticket").Inc()
		return "", fmt.Errorf("%w: %s", ErrCheckoutSession, err)
	}

	if _, err := s.tickets.Create(models.EventTicket{
		EventID:           eventID,
		UserID:            user.ID,
		TicketCode:        code,
		PurchasePrice:     amount,
		ExternalSessionID: session.ID,
	}); err != nil {
		slog.Error("checkout session created but ticket row write failed; needs manual reconciliation",
			"session_id", session.ID, "ticket_code", code, "user_id", user.ID, "err", err)
		return "", err
	}

	metrics.PaymentsInitiated.WithLabelValues("ticket").Inc()
	return session.URL, nil
}

func (s *TicketService) ListByUser(userID string) ([]models.EventTicket, error) {
	return s.tickets.ListByUser(userID)
}

// CheckIn marks a ticket used at the venue; a second scan fails.
func (s *TicketService) CheckIn(code string) (models.EventTicket, error) {
	ok, err := s.tickets.MarkUsed(code)
	if err != nil {
		return models.EventTicket{}, err
	}
	if !ok {
		if _, err := s.tickets.GetByCode(code); err != nil {
			return models.EventTicket{}, err
		}
		return models.EventTicket{}, ErrTicketUsed
	}
	return s.tickets.GetByCode(code)
}
