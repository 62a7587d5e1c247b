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

func fixtureConfig(t *testing.T, categories, services string) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		CategoriesFile:      filepath.Join(dir, "categories.json"),
		ServicesFile:        filepath.Join(dir, "services.json"),
		PlaceholderHost:     "via.placeholder.com",
		PlaceholderBg:       "4F46E5",
		PlaceholderFg:       "ffffff",
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
	}
	require.NoError(t, os.WriteFile(cfg.CategoriesFile, []byte(categories), 0644))
	require.NoError(t, os.WriteFile(cfg.ServicesFile, []byte(services), 0644))
	return cfg
}

func TestRun_SeedsWithPlaceholdersOnce(t *testing.T) {
	ctx := context.Background()
	cfg := fixtureConfig(t,
		`[{"name":"Tours"},{"name":"Wellness"}]`,
		`[{"name":"Spa","category":"Wellness","mainImage":"/img/spa.png","detailedImages":["/img/a.png","https://cdn/b.png"]}]`,
	)
	store := documentsRepo.NewMemoryStore()

	require.NoError(t, run(ctx, cfg, store, zap.NewNop()))

	categories, err := store.GetAll(ctx, seed.CategoriesCollection)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Tours", categories[0].Fields["name"])
	assert.NotEmpty(t, categories[0].Fields["createdAt"])

	services, err := store.GetAll(ctx, seed.ServicesCollection)
	require.NoError(t, err)
	require.Len(t, services, 1)
	// credentials are set, but seed never uploads
	assert.Equal(t, "https://via.placeholder.com/600x400/4F46E5/ffffff?text=Spa", services[0].Fields["mainImage"])
	assert.Equal(t, []interface{}{
		"https://via.placeholder.com/400x300/4F46E5/ffffff?text=Spa%201",
		"https://cdn/b.png",
	}, services[0].Fields["detailedImages"])

	require.NoError(t, run(ctx, cfg, store, zap.NewNop()))
	n, err := store.Count(ctx, seed.CategoriesCollection)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = store.Count(ctx, seed.ServicesCollection)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRun_LoadErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	cfg := fixtureConfig(t, `[{"name":"Tours"}]`, `{"name":"not an array"}`)
	store := documentsRepo.NewMemoryStore()

	err := run(ctx, cfg, store, zap.NewNop())
	var loadErr *seed.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, cfg.ServicesFile, loadErr.Path)

	n, err := store.Count(ctx, seed.CategoriesCollection)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("STORE_BACKEND=from_file\nLOG_LEVEL=debug\n"), 0644))

	t.Setenv("STORE_BACKEND", "from_env")
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	loadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("STORE_BACKEND"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
}
