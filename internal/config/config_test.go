package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Contains(t, cfg.Catalogue.SupportedFormats, ".jpg")
	assert.Contains(t, cfg.Catalogue.SupportedFormats, ".ogg")
	assert.Contains(t, cfg.Catalogue.SupportedFormats, ".webm")
	assert.Equal(t, int64(2000), cfg.Validation.ModTimeToleranceMS)
	assert.Equal(t, 7, cfg.Validation.StalenessDays)
	assert.Equal(t, int64(1<<30), cfg.Validation.MaxAssetSize)
	assert.Equal(t, 5.1, cfg.Downloader.RequestIntervalSeconds)
	assert.Equal(t, 50, cfg.Downloader.BatchSize)
	assert.Equal(t, "https://opentdb.com/api.php", cfg.Downloader.BaseURL)
}

func TestLoad_WritesDefaultOnFirstUse(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")

	cfg, err := Load(dataDir)
	require.NoError(t, err)
	assert.Equal(t, dataDir, cfg.DataDir)

	assert.FileExists(t, Path(dataDir), "first load writes a default config.yaml")
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")

	cfg, err := Load(dataDir)
	require.NoError(t, err)

	cfg.Validation.StalenessDays = 30
	cfg.Ollama.Model = "mistral"
	require.NoError(t, cfg.Save())

	reloaded, err := Load(dataDir)
	require.NoError(t, err)
	assert.Equal(t, 30, reloaded.Validation.StalenessDays)
	assert.Equal(t, "mistral", reloaded.Ollama.Model)
}

func TestLoad_CorruptFileFallsBackToDefaults(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dataDir), []byte(":\nnot yaml: ["), 0644))

	cfg, err := Load(dataDir)
	assert.Error(t, err)
	require.NotNil(t, cfg, "a usable default config is still returned")
	assert.Equal(t, 7, cfg.Validation.StalenessDays)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("srv", "data", "config.yaml"), Path(filepath.Join("srv", "data")))
	assert.Equal(t, filepath.Join("srv", "data", "catalogue.json"), CataloguePath(filepath.Join("srv", "data")))
	assert.Equal(t, filepath.Join("srv", "assets"), AssetsDir(filepath.Join("srv", "data")))
}
