package service

import "context"

// SyncServiceInterface defines the contract for catalog synchronization
type SyncServiceInterface interface {
	// SyncCatalog drops the cached snapshot, fetches the catalog again and
	// warms the image cache for every bean.
	SyncCatalog(ctx context.Context) (SyncStats, error)
}
