// Package config manages catalogue toolkit configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CatalogueConfig holds settings for the asset catalogue.
type CatalogueConfig struct {
	// SupportedFormats is the list of file extensions the scanner and the
	// orphan check recognise. Extensions include the leading dot.
	SupportedFormats []string `yaml:"supported_formats"`
}

// ValidationConfig holds tolerances for the catalogue validator.
type ValidationConfig struct {
	// ModTimeToleranceMS is the allowed drift between recorded and actual
	// modification times, in milliseconds.
	ModTimeToleranceMS int64 `yaml:"mod_time_tolerance_ms"`

	// StalenessDays is the age of metadata.last_updated after which the
	// catalogue is reported as stale.
	StalenessDays int `yaml:"staleness_days"`

	// MinAssetSize and MaxAssetSize bound plausible asset sizes in bytes.
	MinAssetSize int64 `yaml:"min_asset_size"`
	MaxAssetSize int64 `yaml:"max_asset_size"`
}

// DownloaderConfig holds settings for the OpenTDB downloader.
type DownloaderConfig struct {
	BaseURL     string `yaml:"base_url"`
	CategoryURL string `yaml:"category_url"`
	CountURL    string `yaml:"count_url"`
	TokenURL    string `yaml:"token_url"`

	// RequestIntervalSeconds is the minimum spacing between API requests.
	// The API enforces one request per five seconds.
	RequestIntervalSeconds float64 `yaml:"request_interval_seconds"`

	// MaxRetries is the number of retries after a transport failure.
	MaxRetries int `yaml:"max_retries"`

	// RetryBackoffSeconds is the base backoff; doubled on each retry.
	RetryBackoffSeconds int `yaml:"retry_backoff_seconds"`

	// BatchSize is the number of questions requested per batch (API max 50).
	BatchSize int `yaml:"batch_size"`
}

// OllamaConfig holds settings for AI description generation.
type OllamaConfig struct {
	Host        string  `yaml:"host"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// Config represents the toolkit configuration, loaded from config.yaml in the
// data directory.
type Config struct {
	Catalogue  CatalogueConfig  `yaml:"catalogue"`
	Validation ValidationConfig `yaml:"validation"`
	Downloader DownloaderConfig `yaml:"downloader"`
	Ollama     OllamaConfig     `yaml:"ollama"`

	// DataDir is the directory the config was loaded from (not serialized)
	DataDir string `yaml:"-"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Catalogue: CatalogueConfig{
			SupportedFormats: []string{
				".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp",
				".mp3", ".wav", ".flac", ".aac", ".ogg",
				".mp4", ".mov", ".avi", ".mkv", ".webm",
			},
		},
		Validation: ValidationConfig{
			ModTimeToleranceMS: 2000,
			StalenessDays:      7,
			MinAssetSize:       1,
			MaxAssetSize:       1 << 30, // 1 GiB
		},
		Downloader: DownloaderConfig{
			BaseURL:                "https://opentdb.com/api.php",
			CategoryURL:            "https://opentdb.com/api_category.php",
			CountURL:               "https://opentdb.com/api_count.php",
			TokenURL:               "https://opentdb.com/api_token.php",
			RequestIntervalSeconds: 5.1,
			MaxRetries:             3,
			RetryBackoffSeconds:    10,
			BatchSize:              50,
		},
		Ollama: OllamaConfig{
			Host:        envOr("OLLAMA_HOST", "http://localhost:11434"),
			Model:       envOr("OLLAMA_MODEL", "llama2"),
			Temperature: 0.7,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Path returns the config file path for a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

// CataloguePath returns the manifest path for a data directory.
func CataloguePath(dataDir string) string {
	return filepath.Join(dataDir, "catalogue.json")
}

// AssetsDir returns the assets root for a data directory. Assets live in a
// sibling directory of the data directory.
func AssetsDir(dataDir string) string {
	return filepath.Join(filepath.Dir(dataDir), "assets")
}

// Load loads configuration from the data directory. Missing or unreadable
// config files fall back to defaults; a default config.yaml is written on
// first use so the operator has something to edit.
func Load(dataDir string) (*Config, error) {
	cfg := Default()
	cfg.DataDir = dataDir

	path := Path(dataDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Best effort - the tool works fine without a config file
			_ = cfg.Save()
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.DataDir = dataDir
	return cfg, nil
}

// Save writes the configuration to config.yaml in the data directory.
func (c *Config) Save() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory not set")
	}

	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(Path(c.DataDir), data, 0644)
}
