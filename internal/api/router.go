package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/cribnhq/cribn-backend/internal/api/handlers"
	"github.com/cribnhq/cribn-backend/internal/config"
	"github.com/cribnhq/cribn-backend/internal/metrics"
	"github.com/cribnhq/cribn-backend/internal/middleware"
	"github.com/cribnhq/cribn-backend/internal/services"
)

type RouterDeps struct {
	Cfg        config.Config
	Auth       *middleware.AuthMiddleware
	UserSvc    *services.UserService
	WalletSvc  *services.WalletService
	EventSvc   *services.EventService
	TicketSvc  *services.TicketService
	Reconciler *services.Reconciler
}

func NewRouter(d RouterDeps) http.Handler {
	authH := handlers.NewAuthHandler(d.UserSvc)
	payH := handlers.NewPaymentHandler(d.WalletSvc, d.UserSvc)
	eventH := handlers.NewEventHandler(d.EventSvc, d.TicketSvc, d.UserSvc)
	hookH := handlers.NewWebhookHandler(d.Reconciler)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)

		// the gateway authenticates with its signature, not a bearer token
		r.Post("/paystack-webhook", hookH.Paystack)

		r.Get("/events", eventH.List)

		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth)

			r.Get("/wallet", payH.Wallet)
			r.Get("/wallet/transactions", payH.Transactions)
			r.Post("/paystack-topup", payH.TopUp)
			r.Post("/paystack-withdrawal", payH.Withdrawal)

			r.Post("/events", eventH.Create)
			r.Post("/purchase-ticket", eventH.PurchaseTicket)
			r.Get("/tickets", eventH.ListTickets)
			r.Post("/tickets/{code}/check-in", eventH.CheckIn)
		})
	})

	return r
}
