package stats

import (
	"context"
	"fmt"

	catmodels "collection-manager/feature/catalog/models"
	colmodels "collection-manager/feature/collection/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service aggregates completion statistics over the two tracked owners.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	ownerA string
	ownerB string
}

// NewService creates a new stats service.
func NewService(db *gorm.DB, logger *zap.Logger, ownerA, ownerB string) *Service {
	return &Service{db: db, logger: logger, ownerA: ownerA, ownerB: ownerB}
}

// Report recomputes the full statistics view from live store state.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	var cards []catmodels.Card
	if err := s.db.WithContext(ctx).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	stockA, err := s.loadStock(ctx, s.ownerA)
	if err != nil {
		return nil, err
	}
	stockB, err := s.loadStock(ctx, s.ownerB)
	if err != nil {
		return nil, err
	}

	report := Compute(cards, stockA, stockB, s.ownerA, s.ownerB)
	return &report, nil
}

func (s *Service) loadStock(ctx context.Context, ownerID string) ([]colmodels.StockEntry, error) {
	var entries []colmodels.StockEntry
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load stock for %s: %w", ownerID, err)
	}
	return entries, nil
}
