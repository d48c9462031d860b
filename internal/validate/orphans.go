package validate

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/outsmart/catalogue/internal/catalogue"
)

// ScanOrphans walks root and returns the relative (slash-separated) paths of
// files with a supported extension that are not in known. Unreadable
// directories are reported in warnings and traversal continues into their
// siblings. The function has no side effects; callers decide what to do with
// the matches.
func ScanOrphans(root string, supported map[string]bool, known map[string]bool) (orphans, warnings []string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to read %s: %v", path, err))
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

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}

		if rel = filepath.ToSlash(rel); !known[rel] {
			orphans = append(orphans, rel)
		}
		return nil
	})

	return orphans, warnings
}

// checkOrphans flags files on disk that the manifest does not know about.
func (c *Checker) checkOrphans(m *catalogue.Manifest, result *Result) {
	orphans, warnings := ScanOrphans(c.cfg.AssetsDir, c.supported, m.PathSet())
	result.Warnings = append(result.Warnings, warnings...)

	for _, path := range orphans {
		result.Warnings = append(result.Warnings, "Orphaned file not in catalogue: "+path)
		result.Stats.OrphanedFiles++
	}
}
