package api

import (
	"github.com/gin-gonic/gin"
	"github.com/roamsim/roamsim/internal/api/v1"
	"github.com/roamsim/roamsim/internal/config"
	"github.com/roamsim/roamsim/internal/logger"
	"github.com/roamsim/roamsim/internal/rest/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health   *v1.HealthHandler
	Catalog  *v1.CatalogHandler
	Checkout *v1.CheckoutHandler
	Webhook  *v1.WebhookHandler
	Admin    *v1.AdminHandler
}

// NewRouter builds the gin engine with the standard middleware chain and all
// routes mounted.
func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(log),
		middleware.ErrorHandler,
	)

	router.GET("/health", handlers.Health.Health)

	// Webhooks skip the locale middleware; the provider sets no locale.
	router.POST("/webhooks/stripe", handlers.Webhook.HandleStripeWebhook)

	public := router.Group("/api/v1", middleware.LocaleMiddleware)
	{
		public.GET("/catalog", handlers.Catalog.GetCatalog)
		public.POST("/checkout", handlers.Checkout.CreateCheckout)
		public.GET("/orders/status", handlers.Checkout.GetOrderStatus)
	}

	admin := router.Group("/api/v1/admin", middleware.AdminAuthMiddleware(cfg))
	{
		admin.GET("/orders", handlers.Admin.ListOrders)
		admin.POST("/reconcile/:session_id", handlers.Admin.ReconcileSession)
	}

	return router
}
