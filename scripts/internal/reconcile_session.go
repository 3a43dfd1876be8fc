package internal

import (
	"context"
	"fmt"
	"time"

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

// ReconcileSession replays reconciliation for one checkout session against
// the live environment. Used to recover orders when a webhook delivery was
// lost. Safe to run for sessions that already produced an order.
func ReconcileSession(sessionID string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	store, err := gormrepo.NewStore(cfg, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer store.Close()

	reconciler := service.NewReconcilerService(service.ServiceParams{
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
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := reconciler.ReconcileSession(ctx, sessionID)
	if err != nil {
		return err
	}

	log.Infow("session reconciled",
		"session_id", sessionID,
		"order_number", result.OrderNumber,
		"esim_status", string(result.ESIMStatus))
	return nil
}
