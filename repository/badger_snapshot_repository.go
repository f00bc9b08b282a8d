package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"beancatalog/models"
)

// snapshotKey is the single key the catalog snapshot lives under
var snapshotKey = []byte("catalog:snapshot")

// BadgerSnapshotRepository persists the snapshot in an on-disk badger store,
// so a restarted server does not refetch inside the revalidate window
type BadgerSnapshotRepository struct {
	db *badger.DB
}

// NewBadgerSnapshotRepository opens (or creates) the store at dir
func NewBadgerSnapshotRepository(dir string) (*BadgerSnapshotRepository, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerSnapshotRepository{db: db}, nil
}

// Ensure BadgerSnapshotRepository implements SnapshotRepositoryInterface
var _ SnapshotRepositoryInterface = (*BadgerSnapshotRepository)(nil)

func (r *BadgerSnapshotRepository) Load(ctx context.Context) (*models.CatalogSnapshot, error) {
	var snapshot models.CatalogSnapshot
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSnapshotNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snapshot)
		})
	})
	if errors.Is(err, ErrSnapshotNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return &snapshot, nil
}

func (r *BadgerSnapshotRepository) Save(ctx context.Context, snapshot *models.CatalogSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey, data)
	}); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *BadgerSnapshotRepository) Delete(ctx context.Context) error {
	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(snapshotKey)
	}); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (r *BadgerSnapshotRepository) Close() error {
	return r.db.Close()
}
