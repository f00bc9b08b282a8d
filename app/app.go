package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"beancatalog/app/controller"
	"beancatalog/app/router"
	"beancatalog/config"
	"beancatalog/db"
	"beancatalog/repository"
	"beancatalog/service"
)

// App holds the wired services of a running server
type App struct {
	Handler    http.Handler
	Cache      *service.CatalogCache
	Pages      *service.PageService
	repository repository.SnapshotRepositoryInterface
}

// Close releases the snapshot repository
func (a *App) Close() error {
	return a.repository.Close()
}

// NewSnapshotRepository opens the snapshot repository selected by the cache backend
func NewSnapshotRepository(ctx context.Context, cfg config.CacheConfig, log zerolog.Logger) (repository.SnapshotRepositoryInterface, error) {
	switch cfg.Backend {
	case config.BackendBadger:
		repo, err := repository.NewBadgerSnapshotRepository(cfg.Dir)
		if err != nil {
			return nil, err
		}
		log.Info().Str("dir", cfg.Dir).Msg("✓ Badger snapshot store opened")
		return repo, nil
	case config.BackendPostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo := repository.NewPostgresSnapshotRepository(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		return repo, nil
	default:
		return repository.NewMemorySnapshotRepository(), nil
	}
}

// NewCatalogCache builds the cached catalog source
func NewCatalogCache(cfg config.Config, repo repository.SnapshotRepositoryInterface, log zerolog.Logger) *service.CatalogCache {
	fetcher := service.NewCatalogFetcher(nil, cfg.Catalog.BaseURL, cfg.Catalog.Timeout, log)
	return service.NewCatalogCache(fetcher, repo, cfg.Catalog.TTL(), log)
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg config.Config, log zerolog.Logger) (*App, error) {
	repo, err := NewSnapshotRepository(ctx, cfg.Cache, log)
	if err != nil {
		return nil, err
	}

	cache := NewCatalogCache(cfg, repo, log)

	images := service.NewImageService(cache, nil, cfg.Catalog.Timeout, cfg.Images.CacheDir, cfg.Images.Size, cfg.Images.AllowedHosts, log)
	if err := images.EnsureCacheDir(); err != nil {
		repo.Close()
		return nil, err
	}

	renderer, err := service.NewRenderService()
	if err != nil {
		repo.Close()
		return nil, err
	}

	pages := service.NewPageService(cache, images, cfg.Catalog.PageSize, log)
	exporter := service.NewExportService(cfg.Export.PublicBaseURL, cfg.Export.ChromePath, log)
	syncer := service.NewSyncService(cache, images, 0, log)

	// Create controllers
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(pages, renderer),
		Image:   controller.NewImageController(images),
		Export:  controller.NewExportController(exporter),
		Sync:    controller.NewSyncController(syncer, cfg.Server.AdminToken),
	}

	return &App{
		Handler:    router.SetupRoutes(controllers, log),
		Cache:      cache,
		Pages:      pages,
		repository: repo,
	}, nil
}
