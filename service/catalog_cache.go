package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"beancatalog/models"
	"beancatalog/repository"
)

// CatalogCache serves the catalog from a snapshot while it is inside the
// revalidate window and refetches once the window has passed.
// Failed fetches are never cached and stale snapshots are never served.
type CatalogCache struct {
	source     CatalogSource
	repository repository.SnapshotRepositoryInterface
	ttl        time.Duration
	now        func() time.Time
	group      singleflight.Group
	log        zerolog.Logger
}

// Ensure CatalogCache implements CatalogSource
var _ CatalogSource = (*CatalogCache)(nil)

// NewCatalogCache creates a new CatalogCache
func NewCatalogCache(source CatalogSource, repo repository.SnapshotRepositoryInterface, ttl time.Duration, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{
		source:     source,
		repository: repo,
		ttl:        ttl,
		now:        time.Now,
		log:        log.With().Str("component", "catalog_cache").Logger(),
	}
}

// FetchCatalog returns the cached catalog, refetching it when the snapshot is missing or stale
func (c *CatalogCache) FetchCatalog(ctx context.Context) (*models.CatalogPage, error) {
	if page, ok := c.fresh(ctx); ok {
		return page, nil
	}

	// Concurrent misses share one upstream request. The shared call is detached
	// from any single caller's cancellation so one aborted request does not fail the others.
	ch := c.group.DoChan("catalog", func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)
		if page, ok := c.fresh(fetchCtx); ok {
			return page, nil
		}
		return c.refresh(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ErrDataUnavailable
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.CatalogPage), nil
	}
}

// Invalidate drops the stored snapshot so the next call refetches
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.repository.Delete(ctx)
}

func (c *CatalogCache) fresh(ctx context.Context) (*models.CatalogPage, bool) {
	snapshot, err := c.repository.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrSnapshotNotFound) {
			c.log.Warn().Err(err).Msg("⚠️  Snapshot load failed, treating as miss")
		}
		return nil, false
	}
	if !snapshot.IsFresh(c.now(), c.ttl) {
		c.log.Debug().Time("fetchedAt", snapshot.FetchedAt).Msg("Snapshot is stale")
		return nil, false
	}
	page := snapshot.Page
	return &page, true
}

func (c *CatalogCache) refresh(ctx context.Context) (*models.CatalogPage, error) {
	page, err := c.source.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &models.CatalogSnapshot{Page: *page, FetchedAt: c.now()}
	if err := c.repository.Save(ctx, snapshot); err != nil {
		c.log.Warn().Err(err).Msg("⚠️  Snapshot save failed")
	}
	return page, nil
}
