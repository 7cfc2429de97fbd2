package trades

import (
	"errors"

	"collection-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for trades.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the trades routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/trades/give", h.HandleGive)
	app.Post("/trades", h.HandleRecord)
	app.Get("/trades", h.HandleHistory)
}

// HandleGive executes a transfer between the owners.
// @Summary Give Cards
// @Description Atomically moves copies of a card from one owner to the other and appends the trade to history.
// @Tags trades
// @Accept json
// @Produce json
// @Param request body trades.GiveRequest true "Transfer request"
// @Success 200 {object} map[string]interface{} "Transfer applied"
// @Failure 400 {object} map[string]interface{} "Validation error or insufficient stock"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /trades/give [post]
func (h *Handler) HandleGive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req GiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":    false,
			"error": "invalid request body",
		})
	}

	result, err := h.service.Give(c.Context(), req)
	if err != nil {
		var insufficient *InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok":        false,
				"error":     "insufficient stock",
				"available": insufficient.Available,
			})
		case errors.Is(err, ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok":    false,
				"error": err.Error(),
			})
		default:
			l.Error("Transfer failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"ok":    false,
				"error": err.Error(),
			})
		}
	}

	l.Info("Transfer applied",
		zap.String("trade_id", result.TradeID),
		zap.String("from", req.FromOwner),
		zap.String("to", req.ToOwner),
		zap.String("card_id", req.CardID))

	return c.JSON(fiber.Map{
		"ok":      true,
		"tradeId": result.TradeID,
		"fromQty": result.FromQty,
		"toQty":   result.ToQty,
	})
}

// HandleRecord appends a trade without touching stock.
// @Summary Record Trade
// @Description Appends an already-settled trade to history without changing stock quantities.
// @Tags trades
// @Accept json
// @Produce json
// @Param request body trades.RecordRequest true "Trade to record"
// @Success 200 {object} map[string]interface{} "Trade recorded"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /trades [post]
func (h *Handler) HandleRecord(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":    false,
			"error": "invalid request body",
		})
	}

	trade, err := h.service.Record(c.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok":    false,
				"error": err.Error(),
			})
		}
		l.Error("Trade record failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":    false,
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"ok":    true,
		"trade": trade,
	})
}

// HandleHistory lists trades newest first.
// @Summary Trade History
// @Description Lists the most recent trades, newest first, enriched with the traded card.
// @Tags trades
// @Accept json
// @Produce json
// @Param from query string false "Filter by donor owner id, or 'all'"
// @Param to query string false "Filter by recipient owner id, or 'all'"
// @Success 200 {object} map[string]interface{} "Trade list"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /trades [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	trades, err := h.service.History(c.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		l.Error("Trade history failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"trades": trades,
		"total":  len(trades),
	})
}
