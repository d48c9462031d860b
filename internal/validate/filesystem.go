package validate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/outsmart/catalogue/internal/catalogue"
)

// checkFilesystem reconciles manifest records against the assets directory.
// Returns false when the assets directory is missing, in which case the
// remaining filesystem checks (including the orphan scan) are skipped with a
// single warning rather than an error.
func (c *Checker) checkFilesystem(m *catalogue.Manifest, result *Result, invalid invalidSet) bool {
	info, err := os.Stat(c.cfg.AssetsDir)
	if err != nil || !info.IsDir() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Assets directory does not exist: %s", c.cfg.AssetsDir))
		return false
	}

	for i, asset := range m.Assets {
		if asset.Path == "" {
			continue
		}

		full := filepath.Join(c.cfg.AssetsDir, filepath.FromSlash(asset.Path))
		fi, err := os.Stat(full)
		if err != nil {
			if os.IsNotExist(err) {
				result.Errors = append(result.Errors, "Missing file: "+asset.Path)
				result.Stats.MissingFiles++
			} else {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Failed to stat %s: %v", asset.Path, err))
			}
			invalid.add(i)
			continue
		}

		if fi.Size() != asset.Size {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Size mismatch for %s: recorded %d bytes, actual %d bytes",
					asset.Path, asset.Size, fi.Size()))
		}

		if recorded, perr := catalogue.ParseTimestamp(asset.ModifiedAt); perr == nil {
			drift := fi.ModTime().Sub(recorded)
			if drift < 0 {
				drift = -drift
			}
			if drift > c.cfg.ModTimeTolerance {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Modified time mismatch for %s: recorded %s, actual %s",
						asset.Path,
						recorded.Format("2006-01-02 15:04:05"),
						fi.ModTime().Format("2006-01-02 15:04:05")))
			}
		}
	}

	return true
}
