package validate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outsmart/catalogue/internal/testutil"
)

// rawChecker writes an arbitrary JSON document as the catalogue and runs the
// validator against it.
func runRaw(t *testing.T, doc any) *Result {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.json")
	testutil.WriteJSON(t, path, doc)

	c, err := NewChecker(Config{CataloguePath: path, AssetsDir: dir})
	require.NoError(t, err, "failed to create checker")
	return c.Run()
}

func validRawAsset() map[string]any {
	return map[string]any{
		"name":        "cat",
		"path":        "pics/cat.jpg",
		"type":        "image",
		"size":        64,
		"created_at":  "2026-08-01T12:00:00Z",
		"modified_at": "2026-08-01T12:00:00Z",
		"extension":   ".jpg",
	}
}

func validRawMetadata() map[string]any {
	return map[string]any{
		"version":      "1.0.0",
		"created_at":   "2026-08-01T12:00:00Z",
		"last_updated": "2026-08-20T12:00:00Z",
	}
}

func TestSchema_MissingMetadata(t *testing.T) {
	result := runRaw(t, map[string]any{"assets": []any{}})

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "metadata: required field is missing")
}

func TestSchema_MissingAssets(t *testing.T) {
	result := runRaw(t, map[string]any{"metadata": validRawMetadata()})

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "assets: required field is missing")
}

func TestSchema_BadVersion(t *testing.T) {
	meta := validRawMetadata()
	meta["version"] = "1.0"
	result := runRaw(t, map[string]any{"metadata": meta, "assets": []any{}})

	assert.False(t, result.Success)
	assert.Equal(t, 1, countPrefix(result.Errors, "metadata.version"),
		"expected version error, got: %v", result.Errors)
}

func TestSchema_UnknownAssetKey(t *testing.T) {
	asset := validRawAsset()
	asset["colour"] = "tabby"
	result := runRaw(t, map[string]any{"metadata": validRawMetadata(), "assets": []any{asset}})

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, `assets[0]: unknown key "colour"`)
}

func TestSchema_MistypedSize(t *testing.T) {
	asset := validRawAsset()
	asset["size"] = "big"
	result := runRaw(t, map[string]any{"metadata": validRawMetadata(), "assets": []any{asset}})

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "assets[0].size: expected integer")
}

func TestSchema_NegativeSize(t *testing.T) {
	asset := validRawAsset()
	asset["size"] = -5
	result := runRaw(t, map[string]any{"metadata": validRawMetadata(), "assets": []any{asset}})

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "assets[0].size: must not be negative")
}

func TestSchema_BadExtension(t *testing.T) {
	asset := validRawAsset()
	asset["extension"] = "jpg"
	result := runRaw(t, map[string]any{"metadata": validRawMetadata(), "assets": []any{asset}})

	assert.False(t, result.Success)
	assert.Equal(t, 1, countPrefix(result.Errors, "assets[0].extension"),
		"expected extension error, got: %v", result.Errors)
}

func TestSchema_BadType(t *testing.T) {
	asset := validRawAsset()
	asset["type"] = "document"
	result := runRaw(t, map[string]any{"metadata": validRawMetadata(), "assets": []any{asset}})

	assert.False(t, result.Success)
	assert.Equal(t, 1, countPrefix(result.Errors, "assets[0].type"),
		"expected type enum error, got: %v", result.Errors)
}

func TestSchema_CollectsAllViolations(t *testing.T) {
	asset := map[string]any{
		"name": "",
		"path": "pics/cat.jpg",
		"type": "document",
		"size": "big",
	}
	result := runRaw(t, map[string]any{"metadata": validRawMetadata(), "assets": []any{asset}})

	assert.False(t, result.Success)
	assert.GreaterOrEqual(t, len(result.Errors), 5,
		"schema phase collects every violation, got: %v", result.Errors)
	assert.Contains(t, result.Errors, "assets[0].name: must not be empty")
	assert.Contains(t, result.Errors, "assets[0].extension: required field is missing")
	assert.Contains(t, result.Errors, "assets[0].created_at: required field is missing")
	assert.Contains(t, result.Errors, "assets[0].modified_at: required field is missing")
}

func TestSchema_MetadataBagShapes(t *testing.T) {
	asset := validRawAsset()
	asset["metadata"] = map[string]any{
		"width":         1920.0,
		"analysis_type": "basic",
		"flagged":       false,
		"dimensions":    []any{1920.0, 1080.0},
		"palette":       []any{"red", "green"},
		"nested":        map[string]any{"deep": true},
	}
	result := runRaw(t, map[string]any{"metadata": validRawMetadata(), "assets": []any{asset}})

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "assets[0].metadata.palette: arrays must be a pair of numbers")
	assert.Contains(t, result.Errors, "assets[0].metadata.nested: unsupported value type")
	assert.Equal(t, 0, countPrefix(result.Errors, "assets[0].metadata.width"))
	assert.Equal(t, 0, countPrefix(result.Errors, "assets[0].metadata.dimensions"))
}

func TestSchema_AssetCountMustBeInteger(t *testing.T) {
	meta := validRawMetadata()
	meta["asset_count"] = 1.5
	result := runRaw(t, map[string]any{"metadata": meta, "assets": []any{}})

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "metadata.asset_count: expected non-negative integer")
}

func TestSchema_NaiveTimestampsAccepted(t *testing.T) {
	meta := validRawMetadata()
	meta["created_at"] = "2026-08-01T12:00:00.123456"
	meta["last_updated"] = "2026-08-23T12:00:00"
	result := runRaw(t, map[string]any{"metadata": meta, "assets": []any{}})

	assert.Equal(t, 0, countPrefix(result.Errors, "metadata.created_at"),
		"naive timestamps are valid, got: %v", result.Errors)
	assert.Equal(t, 0, countPrefix(result.Errors, "metadata.last_updated"),
		"naive timestamps are valid, got: %v", result.Errors)
}
