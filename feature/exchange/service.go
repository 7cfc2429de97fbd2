package exchange

import (
	"context"
	"fmt"

	catmodels "collection-manager/feature/catalog/models"
	colmodels "collection-manager/feature/collection/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service compares the two tracked owners' collections.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	ownerA string
	ownerB string
	cfg    Config
}

// NewService creates a new exchange service.
func NewService(db *gorm.DB, logger *zap.Logger, ownerA, ownerB string, cfg Config) *Service {
	return &Service{
		db:     db,
		logger: logger,
		ownerA: ownerA,
		ownerB: ownerB,
		cfg:    cfg,
	}
}

// OwnerPair names the two compared owners in a response.
type OwnerPair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// FilterValues enumerates the values the chapter and ink filters accept.
type FilterValues struct {
	Chapters []string `json:"chapters"`
	Inks     []string `json:"inks"`
}

// Comparison is the full exchange view returned to the presentation layer.
type Comparison struct {
	Owners  OwnerPair    `json:"owners"`
	Filters FilterValues `json:"filters"`
	Result
}

// Compare recomputes both surplus lists from live store state.
func (s *Service) Compare(ctx context.Context, filter catmodels.Filter) (*Comparison, error) {
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

	return &Comparison{
		Owners: OwnerPair{A: s.ownerA, B: s.ownerB},
		Filters: FilterValues{
			Chapters: catmodels.Chapters(cards),
			Inks:     catmodels.Inks,
		},
		Result: Compute(cards, stockA, stockB, filter, s.cfg.PerVariant),
	}, nil
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
