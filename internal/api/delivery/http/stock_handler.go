package http

import (
	"errors"
	"net/http"

	"tradex/internal/api/service"
	"tradex/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles HTTP requests for the price catalog.
type StockHandler struct {
	pricingService service.PricingService
	logger         *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(pricingService service.PricingService, logger *logger.Logger) *StockHandler {
	return &StockHandler{pricingService: pricingService, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAllStocks)
	g.GET("/:name/prices", h.GetPriceHistory)
}

// GetAllStocks godoc
// @Summary List price observations
// @Description Get every recorded price observation, newest first
// @Tags stocks
// @Produce  json
// @Success 200 {array} dto.StockResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks [get]
func (h *StockHandler) GetAllStocks(c echo.Context) error {
	stocks, err := h.pricingService.GetAllStocks(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list stocks", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stocks)
}

// GetPriceHistory godoc
// @Summary Price history for a stock
// @Description Get the (price, observed_at) sequence for a stock name, chronological ascending
// @Tags stocks
// @Produce  json
// @Param   name  path    string true    "Stock name"
// @Success 200 {array} dto.PricePoint
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/{name}/prices [get]
func (h *StockHandler) GetPriceHistory(c echo.Context) error {
	points, err := h.pricingService.GetPriceHistory(c.Request().Context(), c.Param("name"))
	if err != nil {
		if !errors.Is(err, service.ErrPriceUnavailable) {
			h.logger.Error("Failed to get price history", logger.ErrorField(err), logger.Field("stock", c.Param("name")))
		}
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, points)
}
