package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"beancatalog/models"
)

// defaultSnapshotKey identifies the catalog row in catalog_snapshots
const defaultSnapshotKey = "beans"

// PostgresSnapshotRepository stores the snapshot in PostgreSQL so several
// server instances share one revalidate window
type PostgresSnapshotRepository struct {
	db  *sql.DB
	key string
}

// NewPostgresSnapshotRepository creates a new PostgresSnapshotRepository.
// Call EnsureSchema before first use.
func NewPostgresSnapshotRepository(db *sql.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db, key: defaultSnapshotKey}
}

// Ensure PostgresSnapshotRepository implements SnapshotRepositoryInterface
var _ SnapshotRepositoryInterface = (*PostgresSnapshotRepository)(nil)

// EnsureSchema creates the snapshot table if it does not exist
func (r *PostgresSnapshotRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS catalog_snapshots (
			key        TEXT PRIMARY KEY,
			payload    JSONB NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create catalog_snapshots: %w", err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) Load(ctx context.Context) (*models.CatalogSnapshot, error) {
	query := `
		SELECT payload, fetched_at
		FROM catalog_snapshots
		WHERE key = $1
	`

	var payload []byte
	var fetchedAt time.Time
	err := r.db.QueryRowContext(ctx, query, r.key).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	snapshot := models.CatalogSnapshot{FetchedAt: fetchedAt}
	if err := json.Unmarshal(payload, &snapshot.Page); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot payload: %w", err)
	}
	return &snapshot, nil
}

func (r *PostgresSnapshotRepository) Save(ctx context.Context, snapshot *models.CatalogSnapshot) error {
	payload, err := json.Marshal(snapshot.Page)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot payload: %w", err)
	}

	query := `
		INSERT INTO catalog_snapshots (key, payload, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET
			payload = EXCLUDED.payload,
			fetched_at = EXCLUDED.fetched_at
	`
	if _, err := r.db.ExecContext(ctx, query, r.key, string(payload), snapshot.FetchedAt); err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM catalog_snapshots WHERE key = $1`, r.key); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) Close() error {
	return r.db.Close()
}
