package trades

import (
	"context"
	"errors"
	"fmt"
	"time"

	colmodels "collection-manager/feature/collection/models"
	"collection-manager/feature/trades/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrValidation marks a request rejected before touching the store.
var ErrValidation = errors.New("invalid trade request")

// InsufficientStockError reports a transfer asking for more copies than the
// donor holds. Available is the donor's current quantity.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}

// historyLimit caps the trade listing at the newest entries.
const historyLimit = 500

// Service executes transfers and records trade history.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	validate *validator.Validate
}

// NewService creates a new trades service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		logger:   logger,
		validate: validator.New(),
	}
}

// GiveRequest asks to move copies of one card from one owner to the other.
type GiveRequest struct {
	FromOwner string `json:"fromOwner" validate:"required"`
	ToOwner   string `json:"toOwner" validate:"required,nefield=FromOwner"`
	CardID    string `json:"cardId" validate:"required"`
	Variant   string `json:"variant" validate:"omitempty,oneof=normal foil"`
	// Quantity below 1 defaults to 1.
	Quantity int `json:"quantity"`
}

// GiveResult reports the state both stock rows ended up in.
type GiveResult struct {
	TradeID string `json:"tradeId"`
	FromQty int    `json:"fromQty"`
	ToQty   int    `json:"toQty"`
}

// Give atomically moves copies from the donor to the recipient and appends
// the trade to history. Either every step commits or none does: stock can
// never go negative and a recorded trade always reflects an applied move.
func (s *Service) Give(ctx context.Context, req GiveRequest) (*GiveResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	variant, err := colmodels.ParseVariant(req.Variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	var result GiveResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range []string{req.FromOwner, req.ToOwner} {
			owner := colmodels.Owner{ID: id, Name: id}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&owner).Error; err != nil {
				return fmt.Errorf("failed to upsert owner %s: %w", id, err)
			}
		}

		donorQty, err := lockedQuantity(tx, req.FromOwner, req.CardID, variant)
		if err != nil {
			return err
		}
		if donorQty < qty {
			return &InsufficientStockError{Available: donorQty}
		}

		remaining := donorQty - qty
		if remaining == 0 {
			// A zero row is never stored; deletion is the canonical zero.
			if err := tx.Where("owner_id = ? AND card_id = ? AND variant = ?", req.FromOwner, req.CardID, variant).
				Delete(&colmodels.StockEntry{}).Error; err != nil {
				return fmt.Errorf("failed to clear donor stock: %w", err)
			}
		} else {
			if err := tx.Model(&colmodels.StockEntry{}).
				Where("owner_id = ? AND card_id = ? AND variant = ?", req.FromOwner, req.CardID, variant).
				Update("quantity", remaining).Error; err != nil {
				return fmt.Errorf("failed to decrement donor stock: %w", err)
			}
		}

		recipientQty, err := lockedQuantity(tx, req.ToOwner, req.CardID, variant)
		if err != nil {
			return err
		}
		newQty := recipientQty + qty
		recipient := colmodels.StockEntry{
			OwnerID:  req.ToOwner,
			CardID:   req.CardID,
			Variant:  variant,
			Quantity: newQty,
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&recipient).Error; err != nil {
			return fmt.Errorf("failed to increment recipient stock: %w", err)
		}

		trade := models.Trade{
			ID:        uuid.NewString(),
			FromOwner: req.FromOwner,
			ToOwner:   req.ToOwner,
			CardID:    req.CardID,
			Variant:   string(variant),
			Quantity:  qty,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Omit("Card").Create(&trade).Error; err != nil {
			return fmt.Errorf("failed to record trade: %w", err)
		}

		result = GiveResult{TradeID: trade.ID, FromQty: remaining, ToQty: newQty}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// lockedQuantity reads one stock row under a row lock, treating a missing
// row as quantity zero.
func lockedQuantity(tx *gorm.DB, ownerID, cardID string, variant colmodels.Variant) (int, error) {
	var entry colmodels.StockEntry
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_id = ? AND card_id = ? AND variant = ?", ownerID, cardID, variant).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read stock for %s: %w", ownerID, err)
	}
	return entry.Quantity, nil
}

// RecordRequest appends a trade that was already settled outside the stock
// tables (e.g. a hand-over logged after the fact).
type RecordRequest struct {
	FromOwner string `json:"fromOwner" validate:"required"`
	ToOwner   string `json:"toOwner" validate:"required,nefield=FromOwner"`
	CardID    string `json:"cardId" validate:"required"`
	Variant   string `json:"variant" validate:"omitempty,oneof=normal foil"`
	Quantity  int    `json:"quantity"`
}

// Record appends a trade row without touching stock.
func (s *Service) Record(ctx context.Context, req RecordRequest) (*models.Trade, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	variant, err := colmodels.ParseVariant(req.Variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	trade := models.Trade{
		ID:        uuid.NewString(),
		FromOwner: req.FromOwner,
		ToOwner:   req.ToOwner,
		CardID:    req.CardID,
		Variant:   string(variant),
		Quantity:  qty,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Omit("Card").Create(&trade).Error; err != nil {
		return nil, fmt.Errorf("failed to record trade: %w", err)
	}
	return &trade, nil
}

// History lists trades newest first, capped at the most recent 500 and
// enriched with the traded card. Empty or "all" owner filters match
// everything.
func (s *Service) History(ctx context.Context, fromOwner, toOwner string) ([]models.Trade, error) {
	q := s.db.WithContext(ctx).Preload("Card").Order("created_at DESC").Limit(historyLimit)
	if fromOwner != "" && fromOwner != "all" {
		q = q.Where("from_owner = ?", fromOwner)
	}
	if toOwner != "" && toOwner != "all" {
		q = q.Where("to_owner = ?", toOwner)
	}

	trades := []models.Trade{}
	if err := q.Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}
	return trades, nil
}
