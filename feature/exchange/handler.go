package exchange

import (
	"collection-manager/core/logger"
	catmodels "collection-manager/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for exchange comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the exchange routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/exchange", h.HandleCompare)
}

// HandleCompare returns both surplus lists for the two tracked owners.
// @Summary Compare Collections
// @Description Computes, in both directions, the cards one owner can give (spare copies) that the other owner lacks.
// @Tags exchange
// @Accept json
// @Produce json
// @Param q query string false "Name substring (case-insensitive)"
// @Param chapter query string false "Chapter code or 'all'"
// @Param ink query string false "Ink name or 'all'"
// @Success 200 {object} exchange.Comparison "Exchange comparison"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /exchange [get]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	filter := catmodels.Filter{
		Query:   c.Query("q"),
		Chapter: c.Query("chapter", "all"),
		Ink:     c.Query("ink", "all"),
	}

	comparison, err := h.service.Compare(c.Context(), filter)
	if err != nil {
		l.Error("Exchange comparison failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(comparison)
}
