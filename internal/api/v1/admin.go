package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/roamsim/roamsim/internal/api/dto"
	"github.com/roamsim/roamsim/internal/domain/order"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/logger"
	"github.com/roamsim/roamsim/internal/service"
	"github.com/samber/lo"
)

const (
	defaultOrderPageSize = 50
	maxOrderPageSize     = 200
)

type AdminHandler struct {
	orderRepo  order.Repository
	reconciler service.ReconcilerService
	logger     *logger.Logger
}

func NewAdminHandler(
	orderRepo order.Repository,
	reconciler service.ReconcilerService,
	logger *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		orderRepo:  orderRepo,
		reconciler: reconciler,
		logger:     logger,
	}
}

// ListOrders returns recent orders, newest first.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	limit := queryInt(c, "limit", defaultOrderPageSize)
	if limit < 1 || limit > maxOrderPageSize {
		limit = defaultOrderPageSize
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	orders, err := h.orderRepo.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Errorw("failed to list orders", "error", err)
		c.Error(err)
		return
	}

	response := &dto.ListOrdersResponse{
		Orders: lo.Map(orders, func(o *order.Order, _ int) *dto.OrderResponse {
			return dto.NewOrderResponse(o)
		}),
		Limit:  limit,
		Offset: offset,
	}

	c.JSON(http.StatusOK, response)
}

// ReconcileSession replays reconciliation for one checkout session. Safe to
// call for sessions that already produced an order.
func (h *AdminHandler) ReconcileSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.Error(ierr.NewError("session_id is required").
			Mark(ierr.ErrValidation))
		return
	}

	result, err := h.reconciler.ReconcileSession(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Errorw("manual reconciliation failed",
			"session_id", sessionID,
			"error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResponse(result))
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
