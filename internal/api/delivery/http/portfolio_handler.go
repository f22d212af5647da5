package http

import (
	"net/http"

	"tradex/internal/api/dto"
	"tradex/internal/api/service"
	"tradex/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler handles HTTP requests for the authenticated user's
// positions.
type PortfolioHandler struct {
	tradingService service.TradingService
	logger         *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(tradingService service.TradingService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{tradingService: tradingService, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group. The
// group must carry the token auth middleware.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetPortfolio)
	g.POST("/buy", h.Buy)
	g.POST("/sell", h.Sell)
}

// GetPortfolio godoc
// @Summary List the user's positions
// @Description Get the authenticated user's positions with the latest price per stock
// @Tags portfolio
// @Produce  json
// @Success 200 {array} dto.PositionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c echo.Context) error {
	user := currentUser(c)
	positions, err := h.tradingService.GetPortfolio(c.Request().Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to list portfolio", logger.ErrorField(err), logger.Field("user_id", user.ID))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, positions)
}

// Buy godoc
// @Summary Buy a stock
// @Description Apply a buy instruction at the latest recorded price
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   trade  body    dto.TradeRequest   true    "Trade instruction"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /portfolio/buy [post]
func (h *PortfolioHandler) Buy(c echo.Context) error {
	return h.trade(c, dto.TradeModeBuy)
}

// Sell godoc
// @Summary Sell a stock
// @Description Apply a sell instruction; selling the full quantity liquidates the position
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   trade  body    dto.TradeRequest   true    "Trade instruction"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /portfolio/sell [post]
func (h *PortfolioHandler) Sell(c echo.Context) error {
	return h.trade(c, dto.TradeModeSell)
}

func (h *PortfolioHandler) trade(c echo.Context, mode dto.TradeMode) error {
	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	user := currentUser(c)
	result, err := h.tradingService.Trade(c.Request().Context(), user.ID, mode, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
