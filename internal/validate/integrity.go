package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/outsmart/catalogue/internal/catalogue"
)

// checkIntegrity enforces the manifest's internal invariants: unique paths,
// sane timestamps, and extensions that agree with the declared type.
func (c *Checker) checkIntegrity(m *catalogue.Manifest, result *Result, invalid invalidSet) {
	seenPaths := make(map[string]bool, len(m.Assets))
	seenNames := make(map[string]bool, len(m.Assets))

	for i, asset := range m.Assets {
		if asset.Path != "" {
			if seenPaths[asset.Path] {
				result.Errors = append(result.Errors, fmt.Sprintf("Duplicate path: %s", asset.Path))
				invalid.add(i)
			}
			seenPaths[asset.Path] = true
		}

		if asset.Name != "" {
			if seenNames[asset.Name] {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Duplicate name: %s", asset.Name))
			}
			seenNames[asset.Name] = true
		}

		// Empty timestamps were already reported as missing by the schema phase
		var createdAt, modifiedAt time.Time
		var createdOK, modifiedOK bool
		if asset.CreatedAt != "" {
			t, err := catalogue.ParseTimestamp(asset.CreatedAt)
			if err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Invalid created_at for %s: %q", describe(asset, i), asset.CreatedAt))
				invalid.add(i)
			} else {
				createdAt, createdOK = t, true
			}
		}
		if asset.ModifiedAt != "" {
			t, err := catalogue.ParseTimestamp(asset.ModifiedAt)
			if err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Invalid modified_at for %s: %q", describe(asset, i), asset.ModifiedAt))
				invalid.add(i)
			} else {
				modifiedAt, modifiedOK = t, true
			}
		}

		if createdOK && modifiedOK && createdAt.After(modifiedAt) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("created_at is after modified_at for %s", describe(asset, i)))
		}

		if exts := catalogue.ExtensionsForType(asset.Type); exts != nil && asset.Extension != "" {
			if !containsFold(exts, asset.Extension) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Extension %s does not match type %s for %s",
						asset.Extension, asset.Type, describe(asset, i)))
			}
		}
	}
}

// describe identifies an asset in a message, falling back to its index when
// the path is missing.
func describe(asset catalogue.AssetRecord, i int) string {
	if asset.Path != "" {
		return asset.Path
	}
	return fmt.Sprintf("assets[%d]", i)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
