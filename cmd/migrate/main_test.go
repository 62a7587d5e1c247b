package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bookingdesk/config"
	documentsRepo "bookingdesk/database/repository/documents"
	"bookingdesk/services/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun_WithoutCloudinaryUsesPlaceholders(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := config.Config{
		CategoriesFile: filepath.Join(dir, "categories.json"),
		ServicesFile:   filepath.Join(dir, "services.json"),
		MediaRoot:      dir,
	}
	require.NoError(t, os.WriteFile(cfg.CategoriesFile, []byte(`[{"name":"Tours"}]`), 0644))
	require.NoError(t, os.WriteFile(cfg.ServicesFile, []byte(`[{"name":"Safari Drive","mainImage":"/img/safari.png"}]`), 0644))

	store := documentsRepo.NewMemoryStore()
	require.NoError(t, run(ctx, cfg, store, zap.NewNop()))

	services, err := store.GetAll(ctx, seed.ServicesCollection)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "https://via.placeholder.com/600x400/4F46E5/ffffff?text=Safari%20Drive", services[0].Fields["mainImage"])
	assert.Equal(t, []interface{}{}, services[0].Fields["detailedImages"])
}

func TestRun_NonEmptyCollectionsAreSkipped(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := config.Config{
		CategoriesFile: filepath.Join(dir, "categories.json"),
		ServicesFile:   filepath.Join(dir, "services.json"),
	}
	require.NoError(t, os.WriteFile(cfg.CategoriesFile, []byte(`[{"name":"Tours"}]`), 0644))
	require.NoError(t, os.WriteFile(cfg.ServicesFile, []byte(`[]`), 0644))

	store := documentsRepo.NewMemoryStore()
	_, err := store.Add(ctx, seed.CategoriesCollection, map[string]interface{}{"name": "Existing"})
	require.NoError(t, err)

	require.NoError(t, run(ctx, cfg, store, zap.NewNop()))
	categories, err := store.GetAll(ctx, seed.CategoriesCollection)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Existing", categories[0].Fields["name"])
}

func TestRun_StoreFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		CategoriesFile: filepath.Join(dir, "categories.json"),
		ServicesFile:   filepath.Join(dir, "services.json"),
	}
	require.NoError(t, os.WriteFile(cfg.CategoriesFile, []byte(`[]`), 0644))
	require.NoError(t, os.WriteFile(cfg.ServicesFile, []byte(`[]`), 0644))

	store := documentsRepo.NewMemoryStore()
	require.NoError(t, store.Close())

	err := run(context.Background(), cfg, store, zap.NewNop())
	var queryErr *seed.StoreQueryError
	assert.ErrorAs(t, err, &queryErr)
}
