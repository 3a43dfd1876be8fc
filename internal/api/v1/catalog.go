package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roamsim/roamsim/internal/logger"
	"github.com/roamsim/roamsim/internal/service"
	"github.com/roamsim/roamsim/internal/types"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *logger.Logger
}

func NewCatalogHandler(
	catalogService service.CatalogService,
	logger *logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// GetCatalog returns the destination catalog for the request locale.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	locale := types.GetLocale(c.Request.Context())

	response, err := h.catalogService.GetCatalog(c.Request.Context(), locale)
	if err != nil {
		h.logger.Errorw("failed to get catalog",
			"locale", locale,
			"error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
