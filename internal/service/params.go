package service

import (
	"github.com/roamsim/roamsim/internal/cache"
	"github.com/roamsim/roamsim/internal/config"
	"github.com/roamsim/roamsim/internal/domain/customer"
	"github.com/roamsim/roamsim/internal/domain/order"
	"github.com/roamsim/roamsim/internal/domain/plan"
	"github.com/roamsim/roamsim/internal/email"
	"github.com/roamsim/roamsim/internal/integration/ads"
	"github.com/roamsim/roamsim/internal/integration/esimgo"
	"github.com/roamsim/roamsim/internal/integration/stripe"
	"github.com/roamsim/roamsim/internal/logger"
)

// ServiceParams bundles the dependencies shared by all services so
// constructors stay stable as dependencies grow.
type ServiceParams struct {
	Config *config.Configuration
	Logger *logger.Logger

	PlanRepo     plan.Repository
	OrderRepo    order.Repository
	CustomerRepo customer.Repository

	PaymentClient stripe.Client
	ESIMClient    esimgo.Client
	EmailSender   email.Sender
	AdsReporter   ads.Reporter

	Cache cache.Cache
}
