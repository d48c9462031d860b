// Package validate implements the catalogue validator: a phased, offline
// check of the manifest against its own schema, its internal invariants,
// and the assets directory on disk.
package validate

import (
	"time"
)

// Stats holds the validation counters.
type Stats struct {
	TotalAssets   int `json:"totalAssets"`
	ValidAssets   int `json:"validAssets"`
	InvalidAssets int `json:"invalidAssets"`
	MissingFiles  int `json:"missingFiles"`
	OrphanedFiles int `json:"orphanedFiles"`
}

// Result is the outcome of one validation run. Success is true iff no
// errors were recorded; warnings never fail a run.
type Result struct {
	RunID          string    `json:"runId"`
	Success        bool      `json:"success"`
	Errors         []string  `json:"errors,omitempty"`
	Warnings       []string  `json:"warnings,omitempty"`
	Stats          Stats     `json:"stats"`
	StartedAt      time.Time `json:"startedAt"`
	DurationMillis int64     `json:"durationMillis"`
}

// Config configures a Checker. Zero values get defaults in NewChecker; the
// assets directory is always explicit rather than derived inside the
// checker, so tests can use arbitrary layouts.
type Config struct {
	// CataloguePath is the manifest file to validate.
	CataloguePath string

	// AssetsDir is the root the manifest's asset paths resolve against.
	AssetsDir string

	// ModTimeTolerance is the allowed drift between recorded and actual
	// modification times.
	ModTimeTolerance time.Duration

	// Staleness is the age of metadata.last_updated beyond which the
	// catalogue is reported stale.
	Staleness time.Duration

	// MinAssetSize and MaxAssetSize bound plausible asset sizes in bytes.
	MinAssetSize int64
	MaxAssetSize int64

	// SupportedExtensions is the extension set used by the orphan scan.
	SupportedExtensions []string

	// Now is the clock used for staleness checks. Defaults to time.Now.
	Now func() time.Time
}

// invalidSet tracks which asset records failed at least one check, keyed by
// record index. An asset failing several independent checks counts once in
// the invalidAssets stat.
type invalidSet map[int]struct{}

func (s invalidSet) add(i int) {
	s[i] = struct{}{}
}
