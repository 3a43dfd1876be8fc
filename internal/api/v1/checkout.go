package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roamsim/roamsim/internal/api/dto"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/logger"
	"github.com/roamsim/roamsim/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *logger.Logger
}

func NewCheckoutHandler(
	checkoutService service.CheckoutService,
	logger *logger.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// CreateCheckout starts a hosted checkout and returns the redirect URL.
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req dto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.checkoutService.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to create checkout session",
			"destination", req.Destination,
			"error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetOrderStatus answers the success-page poll by payment session id.
func (h *CheckoutHandler) GetOrderStatus(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.Error(ierr.NewError("session_id is required").
			WithHint("Pass the checkout session id as session_id").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.checkoutService.GetOrderStatus(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Errorw("failed to get order status",
			"session_id", sessionID,
			"error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
