package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"beancatalog/models"
)

const defaultSyncConcurrency = 4

// SyncStats summarizes one synchronization run
type SyncStats struct {
	Total  int `json:"total"`
	Loaded int `json:"loaded"`
	Failed int `json:"failed"` // beans served with a colour swatch
}

// SyncService refreshes the catalog snapshot and warms the image cache
// Implements SyncServiceInterface
type SyncService struct {
	cache       *CatalogCache
	images      *ImageService
	concurrency int
	log         zerolog.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(cache *CatalogCache, images *ImageService, concurrency int, log zerolog.Logger) *SyncService {
	if concurrency < 1 {
		concurrency = defaultSyncConcurrency
	}
	return &SyncService{
		cache:       cache,
		images:      images,
		concurrency: concurrency,
		log:         log.With().Str("component", "sync_service").Logger(),
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncCatalog drops the cached snapshot, refetches the catalog and loads every bean image
func (s *SyncService) SyncCatalog(ctx context.Context) (SyncStats, error) {
	s.log.Info().Msg("🔄 Starting catalog synchronization")

	if err := s.cache.Invalidate(ctx); err != nil {
		return SyncStats{}, fmt.Errorf("failed to invalidate snapshot: %w", err)
	}
	catalog, err := s.cache.FetchCatalog(ctx)
	if err != nil {
		return SyncStats{}, err
	}

	var loaded, failed atomic.Int32
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, bean := range catalog.Items {
		g.Go(func() error {
			img, err := s.images.BeanImage(gCtx, bean.BeanID)
			if err != nil {
				return fmt.Errorf("bean %d: %w", bean.BeanID, err)
			}
			if img.State == models.ImageLoaded {
				loaded.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SyncStats{}, fmt.Errorf("failed to warm image cache: %w", err)
	}

	stats := SyncStats{Total: len(catalog.Items), Loaded: int(loaded.Load()), Failed: int(failed.Load())}
	s.log.Info().
		Int("total", stats.Total).
		Int("loaded", stats.Loaded).
		Int("failed", stats.Failed).
		Msg("🎉 Catalog synchronization completed")
	return stats, nil
}
