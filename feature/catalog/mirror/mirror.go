// Package mirror audits the card image mirror against the catalog.
//
// The sync job copies card images into object storage on a best-effort
// basis, so the mirror can drift: cards without a mirrored image, or
// leftover objects for cards that no longer exist. The audit lists both
// sides and reports the difference; pruning removes the leftovers.
package mirror

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"collection-manager/core/storage"
	"collection-manager/feature/catalog"
	"collection-manager/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Prefix is the object key prefix holding mirrored card images.
const Prefix = "images/"

// Report is the outcome of one mirror audit.
type Report struct {
	// Expected is the number of catalog cards with an upstream image.
	Expected int
	// Mirrored is how many of those have an object in the bucket.
	Mirrored int
	// Missing lists the object keys the catalog expects but the bucket lacks.
	Missing []string
	// Orphans lists bucket objects no catalog card accounts for.
	Orphans []string
}

// Service audits the image mirror.
type Service struct {
	db     *gorm.DB
	store  storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new mirror audit service.
func NewService(db *gorm.DB, store storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		store:  store,
		bucket: bucket,
		logger: logger,
	}
}

// Audit compares the catalog against the bucket contents.
func (s *Service) Audit(ctx context.Context) (*Report, error) {
	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	var cards []models.Card
	if err := s.db.WithContext(ctx).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	expected := make(map[string]struct{}, len(cards))
	for i := range cards {
		if cards[i].ImageURL == "" {
			continue
		}
		expected[catalog.ImageObjectKey(&cards[i])] = struct{}{}
	}

	stored := make(map[string]struct{})
	opts := minio.ListObjectsOptions{Prefix: Prefix, Recursive: true}
	for obj := range s.store.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list mirror objects: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		stored[obj.Key] = struct{}{}
	}

	report := &Report{Expected: len(expected), Missing: []string{}, Orphans: []string{}}
	for key := range expected {
		if _, ok := stored[key]; ok {
			report.Mirrored++
		} else {
			report.Missing = append(report.Missing, key)
		}
	}
	for key := range stored {
		if _, ok := expected[key]; !ok {
			report.Orphans = append(report.Orphans, key)
		}
	}
	sort.Strings(report.Missing)
	sort.Strings(report.Orphans)

	return report, nil
}

// Prune removes the given orphan objects from the bucket.
func (s *Service) Prune(ctx context.Context, orphans []string) error {
	for _, key := range orphans {
		if err := s.store.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
		s.logger.Info("Removed orphan mirror object", zap.String("key", key))
	}
	return nil
}
