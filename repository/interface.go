package repository

import (
	"context"
	"errors"

	"beancatalog/models"
)

// ErrSnapshotNotFound is returned by Load when nothing has been saved yet
var ErrSnapshotNotFound = errors.New("catalog snapshot not found")

// SnapshotRepositoryInterface defines the contract for catalog snapshot storage
type SnapshotRepositoryInterface interface {
	Load(ctx context.Context) (*models.CatalogSnapshot, error)
	Save(ctx context.Context, snapshot *models.CatalogSnapshot) error
	Delete(ctx context.Context) error
	Close() error
}
