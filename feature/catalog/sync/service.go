package sync

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"collection-manager/core/storage"
	"collection-manager/feature/catalog"
	"collection-manager/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service imports the card catalog from the Lorcast API and optionally
// mirrors card scans into the storage bucket.
type Service struct {
	db     *gorm.DB
	client *Client
	store  storage.Client
	bucket string
	logger *zap.Logger
	cfg    catalog.SyncConfig

	// fetchImage is swappable for tests.
	fetchImage func(ctx context.Context, url string) (*http.Response, error)
}

// NewService creates a new catalog sync service. The storage client may be
// nil when image mirroring is disabled.
func NewService(db *gorm.DB, store storage.Client, bucket string, logger *zap.Logger, cfg catalog.SyncConfig) *Service {
	return &Service{
		db:     db,
		client: NewClient(cfg.BaseURL),
		store:  store,
		bucket: bucket,
		logger: logger,
		cfg:    cfg,
		fetchImage: func(ctx context.Context, url string) (*http.Response, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil, err
			}
			return http.DefaultClient.Do(req)
		},
	}
}

// Report summarizes one sync run.
type Report struct {
	Sets     int `json:"sets"`
	Upserts  int `json:"upserts"`
	Mirrored int `json:"mirrored"`
	Skipped  int `json:"skipped"`
}

// Run imports every numbered chapter set, upserting cards as it goes.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	sets, err := s.client.Sets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sets: %w", err)
	}

	chapters := make([]Set, 0, len(sets))
	for _, set := range sets {
		if models.IsChapterCode(set.Code) {
			chapters = append(chapters, set)
		}
	}
	sort.Slice(chapters, func(i, j int) bool {
		return models.ChapterKey(chapters[i].Code) < models.ChapterKey(chapters[j].Code)
	})

	if s.cfg.MirrorImages {
		if err := s.ensureBucket(ctx); err != nil {
			return nil, err
		}
	}

	report := &Report{Sets: len(chapters)}

	for _, set := range chapters {
		s.logger.Info("Importing set", zap.String("code", set.Code), zap.String("name", set.Name))

		// Upstream rate limit
		if s.cfg.ThrottleMillis > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(s.cfg.ThrottleMillis) * time.Millisecond):
			}
		}

		cards, err := s.client.SetCards(ctx, set.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch cards for set %s: %w", set.Code, err)
		}

		for _, wire := range cards {
			card := toCatalogCard(wire, set)
			if err := s.upsert(ctx, card); err != nil {
				return nil, fmt.Errorf("failed to upsert card %s: %w", card.ID, err)
			}
			report.Upserts++

			if s.cfg.MirrorImages {
				mirrored, err := s.mirrorImage(ctx, card)
				if err != nil {
					// A missing scan shouldn't abort the whole import
					s.logger.Warn("Image mirror failed", zap.String("card", card.ID), zap.Error(err))
					continue
				}
				if mirrored {
					report.Mirrored++
				} else {
					report.Skipped++
				}
			}
		}

		s.logger.Info("Set imported", zap.String("code", set.Code), zap.Int("cards", len(cards)))
	}

	return report, nil
}

// toCatalogCard maps the wire format onto the catalog model.
func toCatalogCard(wire Card, set Set) models.Card {
	card := models.Card{
		ID:        wire.ID,
		Name:      wire.Name,
		SetName:   set.Name,
		SetCode:   set.Code,
		Cost:      wire.Cost,
		Strength:  wire.Strength,
		Willpower: wire.Willpower,
		Lore:      wire.Lore,
		Type:      strings.Join(wire.Type, ", "),
		ImageURL:  wire.ImageURL(),
	}
	if wire.Set != nil {
		card.SetName = wire.Set.Name
		card.SetCode = wire.Set.Code
	}
	if wire.Ink != nil {
		card.Ink = *wire.Ink
	}
	if wire.Rarity != nil {
		card.Rarity = *wire.Rarity
	}
	if wire.Text != nil {
		card.Text = *wire.Text
	}
	return card
}

func (s *Service) upsert(ctx context.Context, card models.Card) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&card).Error
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// mirrorImage copies a card scan into the bucket. It returns false when the
// object is already present or the card has no scan.
func (s *Service) mirrorImage(ctx context.Context, card models.Card) (bool, error) {
	if card.ImageURL == "" {
		return false, nil
	}

	key := catalog.ImageObjectKey(&card)
	if _, err := s.store.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err == nil {
		return false, nil
	}

	resp, err := s.fetchImage(ctx, card.ImageURL)
	if err != nil {
		return false, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	_, err = s.store.PutObject(ctx, s.bucket, key, resp.Body, resp.ContentLength, minio.PutObjectOptions{
		ContentType: resp.Header.Get("Content-Type"),
	})
	if err != nil {
		return false, fmt.Errorf("store image: %w", err)
	}

	return true, nil
}
