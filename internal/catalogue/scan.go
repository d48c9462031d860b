package catalogue

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/outsmart/catalogue/internal/errors"
	"github.com/outsmart/catalogue/internal/logging"
)

// Scan walks the assets root and builds a record for every file whose
// extension is in formats (case-insensitive, leading dot). Files that cannot
// be stat'd are logged and skipped; the scan itself only fails if the root
// cannot be walked at all.
func Scan(assetsDir string, formats []string) ([]AssetRecord, error) {
	supported := make(map[string]bool, len(formats))
	for _, f := range formats {
		supported[strings.ToLower(f)] = true
	}

	var assets []AssetRecord

	err := filepath.WalkDir(assetsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == assetsDir {
				if os.IsNotExist(err) {
					return fmt.Errorf("%w: %s", apperrors.ErrAssetsDirNotFound, assetsDir)
				}
				return err
			}
			logging.Warnf("Failed to read %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !supported[ext] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logging.Warnf("Failed to process %s: %v", path, err)
			return nil
		}

		rel, err := filepath.Rel(assetsDir, path)
		if err != nil {
			logging.Warnf("Failed to process %s: %v", path, err)
			return nil
		}

		assets = append(assets, newRecord(filepath.ToSlash(rel), d.Name(), ext, info.Size(), info.ModTime()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Infof("Found %d assets", len(assets))
	return assets, nil
}

func newRecord(relPath, name, ext string, size int64, modTime time.Time) AssetRecord {
	rec := AssetRecord{
		Name:       name,
		Path:       relPath,
		Type:       TypeForExtension(ext),
		Size:       size,
		CreatedAt:  FormatTimestamp(modTime),
		ModifiedAt: FormatTimestamp(modTime),
		Extension:  ext,
		Metadata:   map[string]any{},
	}

	switch rec.Type {
	case TypeImage, TypeAudio, TypeVideo:
		rec.Metadata["analyzed_at"] = FormatTimestamp(time.Now())
		rec.Metadata["analysis_type"] = "basic"
	}

	return rec
}
