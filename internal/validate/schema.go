package validate

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/outsmart/catalogue/internal/catalogue"
)

var (
	versionPattern   = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	extensionPattern = regexp.MustCompile(`^\.[a-zA-Z0-9]+$`)
)

// assetKeys is the closed key set of an asset record. Anything else on an
// asset object is a schema error.
var assetKeys = map[string]bool{
	"name":            true,
	"path":            true,
	"type":            true,
	"size":            true,
	"created_at":      true,
	"modified_at":     true,
	"extension":       true,
	"metadata":        true,
	"ai_description":  true,
	"ai_generated_at": true,
}

// checkSchema validates the structural contract of the manifest. All
// violations are collected; the phase never aborts early.
func (c *Checker) checkSchema(raw *rawManifest, result *Result) {
	addErr := func(format string, args ...any) {
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	if raw.Metadata == nil {
		addErr("metadata: required field is missing")
	} else {
		c.checkMetadataSchema(raw.Metadata, addErr)
	}

	if raw.Assets == nil {
		addErr("assets: required field is missing")
		return
	}

	for i, asset := range raw.Assets {
		if asset == nil {
			addErr("assets[%d]: expected object", i)
			continue
		}
		c.checkAssetSchema(i, asset, addErr)
	}
}

func (c *Checker) checkMetadataSchema(meta map[string]any, addErr func(string, ...any)) {
	if v, ok := requireString(meta, "version", "metadata.version", addErr); ok {
		if !versionPattern.MatchString(v) {
			addErr(`metadata.version: %q does not match \d+.\d+.\d+`, v)
		}
	}

	for _, field := range []string{"created_at", "last_updated"} {
		if v, ok := requireString(meta, field, "metadata."+field, addErr); ok {
			if _, err := catalogue.ParseTimestamp(v); err != nil {
				addErr("metadata.%s: invalid timestamp %q", field, v)
			}
		}
	}

	if raw, present := meta["asset_count"]; present {
		n, ok := raw.(float64)
		if !ok || n != math.Trunc(n) || n < 0 {
			addErr("metadata.asset_count: expected non-negative integer")
		}
	}
}

func (c *Checker) checkAssetSchema(i int, asset map[string]any, addErr func(string, ...any)) {
	field := func(name string) string {
		return fmt.Sprintf("assets[%d].%s", i, name)
	}

	// Unknown keys, in stable order so repeated runs produce identical reports
	keys := make([]string, 0, len(asset))
	for k := range asset {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !assetKeys[k] {
			addErr("assets[%d]: unknown key %q", i, k)
		}
	}

	if v, ok := requireString(asset, "name", field("name"), addErr); ok && v == "" {
		addErr("%s: must not be empty", field("name"))
	}
	if v, ok := requireString(asset, "path", field("path"), addErr); ok && v == "" {
		addErr("%s: must not be empty", field("path"))
	}

	if v, ok := requireString(asset, "type", field("type"), addErr); ok {
		if !catalogue.ValidType(v) {
			addErr("%s: %q is not one of image, audio, video, unknown", field("type"), v)
		}
	}

	if raw, present := asset["size"]; !present {
		addErr("%s: required field is missing", field("size"))
	} else if n, ok := raw.(float64); !ok || n != math.Trunc(n) {
		addErr("%s: expected integer", field("size"))
	} else if n < 0 {
		addErr("%s: must not be negative", field("size"))
	}

	requireString(asset, "created_at", field("created_at"), addErr)
	requireString(asset, "modified_at", field("modified_at"), addErr)

	if v, ok := requireString(asset, "extension", field("extension"), addErr); ok {
		if !extensionPattern.MatchString(v) {
			addErr(`%s: %q does not match ^\.[a-zA-Z0-9]+$`, field("extension"), v)
		}
	}

	if raw, present := asset["metadata"]; present {
		bag, ok := raw.(map[string]any)
		if !ok {
			addErr("%s: expected object", field("metadata"))
		} else {
			c.checkMetadataBag(i, bag, addErr)
		}
	}

	for _, name := range []string{"ai_description", "ai_generated_at"} {
		if raw, present := asset[name]; present {
			if _, ok := raw.(string); !ok {
				addErr("%s: expected string", field(name))
			}
		}
	}
}

// checkMetadataBag restricts the open metadata bag to a closed set of value
// shapes: string, number, bool, or a pair of numbers (e.g. dimensions).
func (c *Checker) checkMetadataBag(i int, bag map[string]any, addErr func(string, ...any)) {
	keys := make([]string, 0, len(bag))
	for k := range bag {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := bag[k].(type) {
		case string, float64, bool, nil:
			// permitted scalar shapes
		case []any:
			ok := len(v) == 2
			for _, el := range v {
				if _, isNum := el.(float64); !isNum {
					ok = false
				}
			}
			if !ok {
				addErr("assets[%d].metadata.%s: arrays must be a pair of numbers", i, k)
			}
		default:
			addErr("assets[%d].metadata.%s: unsupported value type", i, k)
		}
	}
}

// requireString checks that a required field is present and a string.
// Returns the value and whether further checks on it make sense.
func requireString(m map[string]any, key, fieldPath string, addErr func(string, ...any)) (string, bool) {
	raw, present := m[key]
	if !present {
		addErr("%s: required field is missing", fieldPath)
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		addErr("%s: expected string", fieldPath)
		return "", false
	}
	return s, true
}
