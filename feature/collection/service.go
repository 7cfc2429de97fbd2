package collection

import (
	"context"
	"fmt"

	"collection-manager/feature/collection/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles per-owner stock reads and quantity writes.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new collection service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// List returns every stock entry of one owner. An unknown owner simply has
// no entries.
func (s *Service) List(ctx context.Context, ownerID string) ([]models.StockEntry, error) {
	entries := []models.StockEntry{}
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return entries, nil
}

// SetQuantity sets the owner's quantity for one card variant. Negative input
// clamps to zero, and zero deletes the row: the store never keeps a
// zero-quantity entry, matching the transfer path's delete-on-zero.
// It returns the effective quantity.
func (s *Service) SetQuantity(ctx context.Context, ownerID, cardID string, variant models.Variant, quantity int) (int, error) {
	if quantity < 0 {
		quantity = 0
	}

	db := s.db.WithContext(ctx)

	// Lazy owner registration, same as the transfer path
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Owner{ID: ownerID, Name: ownerID}).Error; err != nil {
		return 0, fmt.Errorf("failed to register owner: %w", err)
	}

	if quantity == 0 {
		if err := db.Where("owner_id = ? AND card_id = ? AND variant = ?", ownerID, cardID, variant).
			Delete(&models.StockEntry{}).Error; err != nil {
			return 0, fmt.Errorf("failed to clear stock entry: %w", err)
		}
		return 0, nil
	}

	entry := models.StockEntry{
		OwnerID:  ownerID,
		CardID:   cardID,
		Variant:  variant,
		Quantity: quantity,
	}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error; err != nil {
		return 0, fmt.Errorf("failed to save stock entry: %w", err)
	}

	return quantity, nil
}
