package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cribnhq/cribn-backend/internal/api"
	"github.com/cribnhq/cribn-backend/internal/auth"
	"github.com/cribnhq/cribn-backend/internal/config"
	"github.com/cribnhq/cribn-backend/internal/db"
	"github.com/cribnhq/cribn-backend/internal/gateway/paystack"
	"github.com/cribnhq/cribn-backend/internal/gateway/stripe"
	"github.com/cribnhq/cribn-backend/internal/logger"
	"github.com/cribnhq/cribn-backend/internal/metrics"
	"github.com/cribnhq/cribn-backend/internal/middleware"
	"github.com/cribnhq/cribn-backend/internal/repository/postgres"
	"github.com/cribnhq/cribn-backend/internal/services"
	"github.com/cribnhq/cribn-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, 24*time.Hour)
	paystackClient := paystack.NewClient(cfg.PaystackSecretKey)
	stripeClient := stripe.NewClient(cfg.StripeSecretKey)

	userSvc := services.NewUserService(repos.Users, tm)
	walletSvc := services.NewWalletService(repos.Wallets, repos.Transactions, repos.AuditLogs, paystackClient, wp, cfg.AppBaseURL)
	eventSvc := services.NewEventService(repos.Events)
	ticketSvc := services.NewTicketService(repos.Tickets, repos.Events, stripeClient, cfg.AppBaseURL)
	reconciler := services.NewReconciler(repos.Transactions, repos.AuditLogs, wp, cfg.PaystackWebhookSecret)

	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		Auth:       middleware.NewAuthMiddleware(tm),
		UserSvc:    userSvc,
		WalletSvc:  walletSvc,
		EventSvc:   eventSvc,
		TicketSvc:  ticketSvc,
		Reconciler: reconciler,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
