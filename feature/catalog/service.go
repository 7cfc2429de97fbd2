package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"collection-manager/core/storage"
	"collection-manager/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrCardNotFound is returned when a card id is not in the catalog.
var ErrCardNotFound = errors.New("card not found")

// ErrNotMirrored is returned when a card has no scan in the storage bucket.
var ErrNotMirrored = errors.New("card image not mirrored")

// Service handles catalog reads.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Listing is the catalog view returned to the presentation layer.
type Listing struct {
	Filters FilterValues  `json:"filters"`
	Cards   []models.Card `json:"cards"`
	Total   int           `json:"total"`
}

// FilterValues enumerates the values the chapter and ink filters accept.
type FilterValues struct {
	Chapters []string `json:"chapters"`
	Inks     []string `json:"inks"`
}

// List returns the filtered, ordered catalog. The filter values are computed
// from the full catalog so narrowing one filter never hides the others.
func (s *Service) List(ctx context.Context, f models.Filter) (*Listing, error) {
	cards, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := f.Apply(cards)
	models.SortCards(filtered)

	return &Listing{
		Filters: FilterValues{
			Chapters: models.Chapters(cards),
			Inks:     models.Inks,
		},
		Cards: filtered,
		Total: len(filtered),
	}, nil
}

// Get returns a single card by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Card, error) {
	var card models.Card
	if err := s.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to load card: %w", err)
	}
	return &card, nil
}

// OpenImage streams the mirrored scan for a card. It returns ErrNotMirrored
// when the bucket has no object for the card, so the handler can fall back to
// the upstream image URL.
func (s *Service) OpenImage(ctx context.Context, card *models.Card) (io.ReadCloser, string, error) {
	key := ImageObjectKey(card)

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		return nil, "", ErrNotMirrored
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image object: %w", err)
	}

	return obj, imageContentType(key), nil
}

// ImageObjectKey derives the bucket key for a card's mirrored scan. The
// extension follows the upstream URL so the sync job and the read path agree.
func ImageObjectKey(card *models.Card) string {
	ext := strings.ToLower(path.Ext(card.ImageURL))
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}
	return "images/" + card.ID + ext
}

func imageContentType(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (s *Service) loadAll(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	if err := s.db.WithContext(ctx).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cards, nil
}
