// Package testutil provides fixtures for building catalogues and asset
// trees on disk in tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/outsmart/catalogue/internal/catalogue"
)

// CatalogueFixture is a manifest plus the directory layout it describes.
type CatalogueFixture struct {
	// DataDir holds the catalogue file
	DataDir string
	// CataloguePath is DataDir/catalogue.json
	CataloguePath string
	// AssetsDir is the sibling assets directory
	AssetsDir string
	// Manifest is the in-memory manifest, written by Write
	Manifest *catalogue.Manifest
}

// CatalogueFixtureBuilder constructs catalogue fixtures
type CatalogueFixtureBuilder struct {
	t          *testing.T
	root       string
	updated    time.Time
	assetCount *int
	assets     []fixtureAsset
}

type fixtureAsset struct {
	record  catalogue.AssetRecord
	onDisk  bool
	content []byte
	modTime time.Time
}

// NewCatalogueFixture starts building a catalogue fixture rooted in a fresh
// temp directory.
func NewCatalogueFixture(t *testing.T) *CatalogueFixtureBuilder {
	return &CatalogueFixtureBuilder{
		t:       t,
		root:    t.TempDir(),
		updated: time.Now(),
	}
}

// WithLastUpdated sets metadata.last_updated.
func (b *CatalogueFixtureBuilder) WithLastUpdated(ts time.Time) *CatalogueFixtureBuilder {
	b.updated = ts
	return b
}

// WithAssetCount sets metadata.asset_count explicitly.
func (b *CatalogueFixtureBuilder) WithAssetCount(n int) *CatalogueFixtureBuilder {
	b.assetCount = &n
	return b
}

// WithAsset records an asset and writes a matching file of the given size
// under the assets directory.
func (b *CatalogueFixtureBuilder) WithAsset(rel string, size int) *CatalogueFixtureBuilder {
	now := time.Now()
	b.assets = append(b.assets, fixtureAsset{
		record:  RecordFor(rel, int64(size), now),
		onDisk:  true,
		content: make([]byte, size),
		modTime: now,
	})
	return b
}

// WithMissingAsset records an asset without writing a file for it.
func (b *CatalogueFixtureBuilder) WithMissingAsset(rel string, size int) *CatalogueFixtureBuilder {
	b.assets = append(b.assets, fixtureAsset{
		record: RecordFor(rel, int64(size), time.Now()),
	})
	return b
}

// WithRecord records an arbitrary asset record without touching the disk.
func (b *CatalogueFixtureBuilder) WithRecord(rec catalogue.AssetRecord) *CatalogueFixtureBuilder {
	b.assets = append(b.assets, fixtureAsset{record: rec})
	return b
}

// WithLooseFile writes a file under the assets directory without recording
// it in the manifest.
func (b *CatalogueFixtureBuilder) WithLooseFile(rel string, size int) *CatalogueFixtureBuilder {
	b.writeFile(rel, make([]byte, size), time.Now())
	return b
}

// Build writes the manifest and all on-disk assets and returns the fixture.
func (b *CatalogueFixtureBuilder) Build() *CatalogueFixture {
	dataDir := filepath.Join(b.root, "data")
	assetsDir := filepath.Join(b.root, "assets")
	require.NoError(b.t, os.MkdirAll(dataDir, 0755), "failed to create data dir")
	require.NoError(b.t, os.MkdirAll(assetsDir, 0755), "failed to create assets dir")

	m := catalogue.NewManifest()
	m.Metadata.LastUpdated = catalogue.FormatTimestamp(b.updated)
	for _, a := range b.assets {
		m.Assets = append(m.Assets, a.record)
		if a.onDisk {
			b.writeFile(a.record.Path, a.content, a.modTime)
		}
	}
	if b.assetCount != nil {
		m.Metadata.AssetCount = b.assetCount
	} else {
		n := len(m.Assets)
		m.Metadata.AssetCount = &n
	}

	cataloguePath := filepath.Join(dataDir, "catalogue.json")
	require.NoError(b.t, m.Save(cataloguePath), "failed to write catalogue")

	return &CatalogueFixture{
		DataDir:       dataDir,
		CataloguePath: cataloguePath,
		AssetsDir:     assetsDir,
		Manifest:      m,
	}
}

func (b *CatalogueFixtureBuilder) writeFile(rel string, content []byte, modTime time.Time) {
	full := filepath.Join(b.root, "assets", filepath.FromSlash(rel))
	require.NoError(b.t, os.MkdirAll(filepath.Dir(full), 0755), "failed to create asset dir")
	require.NoError(b.t, os.WriteFile(full, content, 0644), "failed to write asset %s", rel)
	require.NoError(b.t, os.Chtimes(full, modTime, modTime), "failed to set mtime for %s", rel)
}

// RecordFor builds an asset record that agrees with a file of the given size
// and modification time at rel.
func RecordFor(rel string, size int64, modTime time.Time) catalogue.AssetRecord {
	ext := strings.ToLower(filepath.Ext(rel))
	ts := catalogue.FormatTimestamp(modTime)
	return catalogue.AssetRecord{
		Name:       strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel)),
		Path:       rel,
		Type:       catalogue.TypeForExtension(ext),
		Size:       size,
		CreatedAt:  ts,
		ModifiedAt: ts,
		Extension:  ext,
	}
}

// WriteJSON marshals v and writes it to path, creating parent directories.
// Useful for hand-built documents that the typed manifest cannot express.
func WriteJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err, "failed to marshal fixture")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "failed to create fixture dir")
	require.NoError(t, os.WriteFile(path, data, 0644), "failed to write fixture")
}
