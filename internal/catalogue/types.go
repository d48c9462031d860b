// Package catalogue defines the asset catalogue data model and the
// operations that produce it: the on-disk manifest, the assets scanner,
// and summary statistics.
//
// The manifest file (catalogue.json) is the contract between the producing
// tools and downstream consumers; field names and value formats here are
// load-bearing.
package catalogue

import (
	"strings"
	"time"
)

// AssetType classifies an asset by its media kind.
type AssetType string

const (
	TypeImage   AssetType = "image"
	TypeAudio   AssetType = "audio"
	TypeVideo   AssetType = "video"
	TypeUnknown AssetType = "unknown"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}
var audioExtensions = []string{".mp3", ".wav", ".flac", ".aac", ".ogg"}
var videoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm"}

// TypeForExtension maps a file extension (with leading dot) to an asset type.
// Matching is case-insensitive.
func TypeForExtension(ext string) AssetType {
	ext = strings.ToLower(ext)
	for _, e := range imageExtensions {
		if ext == e {
			return TypeImage
		}
	}
	for _, e := range audioExtensions {
		if ext == e {
			return TypeAudio
		}
	}
	for _, e := range videoExtensions {
		if ext == e {
			return TypeVideo
		}
	}
	return TypeUnknown
}

// ExtensionsForType returns the extension set associated with a type.
// Unknown has no associated set; any extension is acceptable.
func ExtensionsForType(t AssetType) []string {
	switch t {
	case TypeImage:
		return imageExtensions
	case TypeAudio:
		return audioExtensions
	case TypeVideo:
		return videoExtensions
	default:
		return nil
	}
}

// ValidType reports whether t is one of the known type enum values.
func ValidType(t string) bool {
	switch AssetType(t) {
	case TypeImage, TypeAudio, TypeVideo, TypeUnknown:
		return true
	}
	return false
}

// Metadata is the manifest header.
type Metadata struct {
	Version     string `json:"version"`
	CreatedAt   string `json:"created_at"`
	LastUpdated string `json:"last_updated"`
	AssetCount  *int   `json:"asset_count,omitempty"`
}

// AssetRecord describes one asset in the manifest. Path is relative to the
// assets root and is the record's primary key. Timestamps are kept as strings
// because the validator must report unparseable values rather than reject the
// whole document.
type AssetRecord struct {
	Name       string         `json:"name"`
	Path       string         `json:"path"`
	Type       AssetType      `json:"type"`
	Size       int64          `json:"size"`
	CreatedAt  string         `json:"created_at"`
	ModifiedAt string         `json:"modified_at"`
	Extension  string         `json:"extension"`
	Metadata   map[string]any `json:"metadata,omitempty"`

	// AI description fields come and go as a pair
	AIDescription string `json:"ai_description,omitempty"`
	AIGeneratedAt string `json:"ai_generated_at,omitempty"`
}

// Manifest is the full catalogue document.
type Manifest struct {
	Metadata Metadata      `json:"metadata"`
	Assets   []AssetRecord `json:"assets"`
}

// PathSet returns the set of asset paths in the manifest.
func (m *Manifest) PathSet() map[string]bool {
	set := make(map[string]bool, len(m.Assets))
	for _, a := range m.Assets {
		set[a.Path] = true
	}
	return set
}

// timestampLayouts lists accepted manifest timestamp formats. The original
// producer wrote naive ISO-8601 strings without a zone; newer producers write
// RFC 3339.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses a manifest timestamp. Naive timestamps (no zone) are
// interpreted as local time, matching how the producer recorded them.
func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatTimestamp renders a time in the manifest's canonical format.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
