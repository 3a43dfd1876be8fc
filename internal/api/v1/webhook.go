package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/integration/stripe"
	"github.com/roamsim/roamsim/internal/logger"
	"github.com/roamsim/roamsim/internal/service"
)

type WebhookHandler struct {
	paymentClient stripe.Client
	reconciler    service.ReconcilerService
	logger        *logger.Logger
}

func NewWebhookHandler(
	paymentClient stripe.Client,
	reconciler service.ReconcilerService,
	logger *logger.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		paymentClient: paymentClient,
		reconciler:    reconciler,
		logger:        logger,
	}
}

// HandleStripeWebhook verifies the event signature and reconciles completed
// checkout sessions. Unhandled event types are acknowledged so the provider
// stops retrying them.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Failed to read webhook payload").
			Mark(ierr.ErrValidation))
		return
	}

	event, err := h.paymentClient.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.Errorw("webhook verification failed", "error", err)
		c.Error(err)
		return
	}

	if event.Type != "checkout.session.completed" || event.Session == nil {
		h.logger.Infow("ignoring webhook event", "type", event.Type)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	result, err := h.reconciler.ReconcileCompletedSession(c.Request.Context(), event.Session)
	if err != nil {
		h.logger.Errorw("webhook reconciliation failed",
			"session_id", event.Session.ID,
			"error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"received":     true,
		"order_number": result.OrderNumber,
	})
}
