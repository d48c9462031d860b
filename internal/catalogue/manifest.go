package catalogue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/outsmart/catalogue/internal/errors"
)

// NewManifest creates an empty manifest with current timestamps.
func NewManifest() *Manifest {
	now := FormatTimestamp(time.Now())
	return &Manifest{
		Metadata: Metadata{
			Version:     "1.0.0",
			CreatedAt:   now,
			LastUpdated: now,
		},
		Assets: []AssetRecord{},
	}
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: failed to parse manifest: %v", apperrors.ErrCatalogueCorrupt, err)
	}

	return &m, nil
}

// Save writes the manifest as indented JSON.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Touch updates last_updated and asset_count to match the current assets.
func (m *Manifest) Touch() {
	m.Metadata.LastUpdated = FormatTimestamp(time.Now())
	count := len(m.Assets)
	m.Metadata.AssetCount = &count
}
