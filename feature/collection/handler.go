package collection

import (
	"collection-manager/core/logger"
	"collection-manager/feature/collection/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for owner collections.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the collection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/collection")
	group.Get("/", h.HandleList)
	group.Post("/qty", h.HandleSetQuantity)
}

// SetQuantityRequest is the body of the quantity-set endpoint.
type SetQuantityRequest struct {
	OwnerID  string `json:"ownerId"`
	CardID   string `json:"cardId"`
	Variant  string `json:"variant"`
	Quantity *int   `json:"quantity"`
}

// HandleList returns one owner's stock entries.
// @Summary List Collection
// @Description Returns every stock entry of the given owner. Without an ownerId the list is empty.
// @Tags collection
// @Accept json
// @Produce json
// @Param ownerId query string false "Owner ID"
// @Success 200 {array} models.StockEntry "Stock entries"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	ownerID := c.Query("ownerId")
	if ownerID == "" {
		return c.JSON([]models.StockEntry{})
	}

	entries, err := h.service.List(c.Context(), ownerID)
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("Collection listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(entries)
}

// HandleSetQuantity sets an owner's quantity for one card variant.
// @Summary Set Quantity
// @Description Sets the owner's quantity for a card variant. Negative values clamp to zero; zero removes the entry.
// @Tags collection
// @Accept json
// @Produce json
// @Param request body collection.SetQuantityRequest true "Quantity update"
// @Success 200 {object} map[string]interface{} "Effective quantity"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /collection/qty [post]
func (h *Handler) HandleSetQuantity(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "bad payload"})
	}

	if req.OwnerID == "" || req.CardID == "" || req.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "bad payload"})
	}

	variant, err := models.ParseVariant(req.Variant)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	qty, err := h.service.SetQuantity(c.Context(), req.OwnerID, req.CardID, variant, *req.Quantity)
	if err != nil {
		l.Error("Quantity update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"ok": true, "quantity": qty})
}
