package catalog

import (
	"errors"

	"collection-manager/core/logger"
	"collection-manager/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleList)
	group.Get("/:id/image", h.HandleImage)
}

// HandleList returns the filtered catalog.
// @Summary List Catalog
// @Description Returns the card catalog filtered by name, chapter, and ink, plus the accepted filter values.
// @Tags catalog
// @Accept json
// @Produce json
// @Param q query string false "Name substring (case-insensitive)"
// @Param chapter query string false "Chapter code or 'all'"
// @Param ink query string false "Ink name or 'all'"
// @Success 200 {object} catalog.Listing "Catalog Listing"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	filter := models.Filter{
		Query:   c.Query("q"),
		Chapter: c.Query("chapter", "all"),
		Ink:     c.Query("ink", "all"),
	}

	listing, err := h.service.List(c.Context(), filter)
	if err != nil {
		l.Error("Catalog listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(listing)
}

// HandleImage streams a card's mirrored scan.
// @Summary Get Card Image
// @Description Streams the mirrored card scan from storage, or redirects to the upstream image when no mirror exists.
// @Tags catalog
// @Produce png
// @Param id path string true "Card ID"
// @Success 200 {file} binary "Card scan"
// @Success 302 {string} string "Redirect to upstream image"
// @Failure 404 {object} map[string]string "Unknown card"
// @Router /catalog/{id}/image [get]
func (h *Handler) HandleImage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	card, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown card"})
		}
		l.Error("Card lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	obj, contentType, err := h.service.OpenImage(c.Context(), card)
	if err != nil {
		if errors.Is(err, ErrNotMirrored) && card.ImageURL != "" {
			return c.Redirect(card.ImageURL, fiber.StatusFound)
		}
		if errors.Is(err, ErrNotMirrored) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no image"})
		}
		l.Error("Image open failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.SendStream(obj)
}
