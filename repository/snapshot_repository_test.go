package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beancatalog/models"
)

func testSnapshot() *models.CatalogSnapshot {
	return &models.CatalogSnapshot{
		Page: models.CatalogPage{
			TotalCount:  2,
			PageSize:    200,
			CurrentPage: 1,
			TotalPages:  1,
			Items: []models.Bean{
				{BeanID: 1, GroupName: []string{"Jelly Belly Official Flavors"}, FlavorName: "Cherry", SugarFree: false},
				{BeanID: 2, GroupName: []string{"Kids Mix Flavors"}, FlavorName: "Bubble Gum", GlutenFree: true},
			},
		},
		FetchedAt: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}
}

// exerciseRepository runs the shared contract against one implementation.
func exerciseRepository(t *testing.T, repo SnapshotRepositoryInterface) {
	t.Helper()
	ctx := context.Background()

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, ErrSnapshotNotFound)

	want := testSnapshot()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Page, got.Page)
	assert.True(t, want.FetchedAt.Equal(got.FetchedAt))

	// Overwrite
	want.Page.TotalCount = 3
	require.NoError(t, repo.Save(ctx, want))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Page.TotalCount)

	require.NoError(t, repo.Delete(ctx))
	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMemorySnapshotRepository(t *testing.T) {
	repo := NewMemorySnapshotRepository()
	defer repo.Close()

	exerciseRepository(t, repo)
}

func TestMemorySnapshotRepository_SaveCopies(t *testing.T) {
	repo := NewMemorySnapshotRepository()
	ctx := context.Background()

	snapshot := testSnapshot()
	require.NoError(t, repo.Save(ctx, snapshot))
	snapshot.Page.TotalCount = 99

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Page.TotalCount)
}

func TestBadgerSnapshotRepository(t *testing.T) {
	repo, err := NewBadgerSnapshotRepository(t.TempDir())
	require.NoError(t, err)
	defer repo.Close()

	exerciseRepository(t, repo)
}

func TestBadgerSnapshotRepository_SurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	ctx := context.Background()

	repo, err := NewBadgerSnapshotRepository(dir)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, testSnapshot()))
	require.NoError(t, repo.Close())

	reopened, err := NewBadgerSnapshotRepository(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Page.Items, 2)
	assert.Equal(t, "Bubble Gum", got.Page.Items[1].FlavorName)
}
