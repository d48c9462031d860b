package validate

import (
	"fmt"

	"github.com/outsmart/catalogue/internal/catalogue"
)

// checkBusinessRules flags drift that does not make the catalogue untrusted:
// implausible sizes, half-set AI description pairs, a stale manifest, and an
// asset_count that disagrees with the asset list.
func (c *Checker) checkBusinessRules(m *catalogue.Manifest, result *Result) {
	for i, asset := range m.Assets {
		if asset.Size < c.cfg.MinAssetSize || asset.Size > c.cfg.MaxAssetSize {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Suspicious size for %s: %d bytes", describe(asset, i), asset.Size))
		}

		if (asset.AIDescription == "") != (asset.AIGeneratedAt == "") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Incomplete AI fields for %s: ai_description and ai_generated_at must be set together",
					describe(asset, i)))
		}
	}

	if m.Metadata.AssetCount != nil && *m.Metadata.AssetCount != len(m.Assets) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Asset count mismatch: metadata says %d, manifest has %d",
				*m.Metadata.AssetCount, len(m.Assets)))
	}

	if m.Metadata.LastUpdated != "" {
		if updated, err := catalogue.ParseTimestamp(m.Metadata.LastUpdated); err == nil {
			if c.now().Sub(updated) > c.cfg.Staleness {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Catalogue is stale: last updated %s", m.Metadata.LastUpdated))
			}
		}
	}
}
