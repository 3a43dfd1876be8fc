package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/roamsim/roamsim/internal/api"
	v1 "github.com/roamsim/roamsim/internal/api/v1"
	"github.com/roamsim/roamsim/internal/cache"
	"github.com/roamsim/roamsim/internal/config"
	"github.com/roamsim/roamsim/internal/email"
	"github.com/roamsim/roamsim/internal/integration/ads"
	"github.com/roamsim/roamsim/internal/integration/esimgo"
	"github.com/roamsim/roamsim/internal/integration/stripe"
	"github.com/roamsim/roamsim/internal/logger"
	gormrepo "github.com/roamsim/roamsim/internal/repository/gorm"
	"github.com/roamsim/roamsim/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	store, err := gormrepo.NewStore(cfg, log)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}

	params := service.ServiceParams{
		Config:        cfg,
		Logger:        log,
		PlanRepo:      gormrepo.NewPlanRepository(store),
		OrderRepo:     gormrepo.NewOrderRepository(store),
		CustomerRepo:  gormrepo.NewCustomerRepository(store),
		PaymentClient: stripe.NewClient(cfg, log),
		ESIMClient:    esimgo.NewClient(cfg, log),
		EmailSender:   email.NewEmail(email.NewEmailClient(cfg), log),
		AdsReporter:   ads.NewReporter(cfg, log),
		Cache:         cache.NewInMemoryCache(),
	}

	reconciler := service.NewReconcilerService(params)

	handlers := api.Handlers{
		Health:   v1.NewHealthHandler(),
		Catalog:  v1.NewCatalogHandler(service.NewCatalogService(params), log),
		Checkout: v1.NewCheckoutHandler(service.NewCheckoutService(params), log),
		Webhook:  v1.NewWebhookHandler(params.PaymentClient, reconciler, log),
		Admin:    v1.NewAdminHandler(params.OrderRepo, reconciler, log),
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           api.NewRouter(handlers, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("starting HTTP server",
			"address", cfg.Server.Address,
			"mode", string(cfg.Deployment.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("HTTP server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	log.Infow("signal received, starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}
	if err := store.Close(); err != nil {
		log.Errorw("database close error", "error", err)
	}
}
