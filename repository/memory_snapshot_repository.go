package repository

import (
	"context"
	"sync"

	"beancatalog/models"
)

// MemorySnapshotRepository keeps the snapshot in process memory
type MemorySnapshotRepository struct {
	mu       sync.RWMutex
	snapshot *models.CatalogSnapshot
}

// NewMemorySnapshotRepository creates an empty MemorySnapshotRepository
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{}
}

// Ensure MemorySnapshotRepository implements SnapshotRepositoryInterface
var _ SnapshotRepositoryInterface = (*MemorySnapshotRepository)(nil)

func (r *MemorySnapshotRepository) Load(ctx context.Context) (*models.CatalogSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.snapshot == nil {
		return nil, ErrSnapshotNotFound
	}
	snapshot := *r.snapshot
	return &snapshot, nil
}

func (r *MemorySnapshotRepository) Save(ctx context.Context, snapshot *models.CatalogSnapshot) error {
	stored := *snapshot

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = &stored
	return nil
}

func (r *MemorySnapshotRepository) Delete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = nil
	return nil
}

func (r *MemorySnapshotRepository) Close() error {
	return nil
}
