package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/outsmart/catalogue/internal/catalogue"
	"github.com/outsmart/catalogue/internal/logging"
)

// Checker performs catalogue validation. One Checker may run many times;
// each run owns its own Result and no state is shared between runs.
type Checker struct {
	cfg       Config
	supported map[string]bool
}

// NewChecker creates a checker, applying defaults for unset config fields.
func NewChecker(cfg Config) (*Checker, error) {
	if cfg.CataloguePath == "" {
		return nil, fmt.Errorf("catalogue path required")
	}
	if cfg.AssetsDir == "" {
		return nil, fmt.Errorf("assets directory required")
	}

	if cfg.ModTimeTolerance == 0 {
		cfg.ModTimeTolerance = 2 * time.Second
	}
	if cfg.Staleness == 0 {
		cfg.Staleness = 7 * 24 * time.Hour
	}
	if cfg.MinAssetSize == 0 {
		cfg.MinAssetSize = 1
	}
	if cfg.MaxAssetSize == 0 {
		cfg.MaxAssetSize = 1 << 30
	}
	if len(cfg.SupportedExtensions) == 0 {
		for _, t := range []catalogue.AssetType{catalogue.TypeImage, catalogue.TypeAudio, catalogue.TypeVideo} {
			cfg.SupportedExtensions = append(cfg.SupportedExtensions, catalogue.ExtensionsForType(t)...)
		}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	supported := make(map[string]bool, len(cfg.SupportedExtensions))
	for _, ext := range cfg.SupportedExtensions {
		supported[strings.ToLower(ext)] = true
	}

	return &Checker{cfg: cfg, supported: supported}, nil
}

// Run executes all validation phases in order and returns the report.
// Phases never short-circuit each other; only a missing or unparseable
// manifest ends the run early. Panics are converted into a single error so
// the tool always produces a report.
func (c *Checker) Run() *Result {
	start := time.Now()
	result := &Result{
		RunID:     uuid.NewString(),
		StartedAt: c.cfg.Now(),
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Validation failed: %v", r))
			}
		}()
		c.run(result)
	}()

	result.Success = len(result.Errors) == 0
	result.DurationMillis = time.Since(start).Milliseconds()

	logging.Debug("validation finished",
		logging.String("runId", result.RunID),
		logging.Bool("success", result.Success),
		logging.Int("errors", len(result.Errors)),
		logging.Int("warnings", len(result.Warnings)))

	return result
}

func (c *Checker) run(result *Result) {
	// Existence - the only short-circuit besides a parse failure
	if _, err := os.Stat(c.cfg.CataloguePath); err != nil {
		result.Errors = append(result.Errors, "Catalogue file does not exist")
		return
	}

	manifest, raw, ok := c.load(result)
	if !ok {
		return
	}

	invalid := make(invalidSet)

	c.checkSchema(raw, result)
	c.checkIntegrity(manifest, result, invalid)
	if c.checkFilesystem(manifest, result, invalid) {
		c.checkOrphans(manifest, result)
	}
	c.checkBusinessRules(manifest, result)

	result.Stats.TotalAssets = len(manifest.Assets)
	result.Stats.InvalidAssets = len(invalid)
	result.Stats.ValidAssets = result.Stats.TotalAssets - result.Stats.InvalidAssets
}

// rawManifest is the loosely-typed view of the document used by the schema
// phase, which needs to see unknown keys and mistyped values.
type rawManifest struct {
	Metadata map[string]any   `json:"metadata"`
	Assets   []map[string]any `json:"assets"`
}

// load parses the manifest twice: once into the typed model used by the
// later phases and once into the raw view used by the schema phase.
// Mistyped fields are tolerated here (they surface as schema errors); only
// malformed JSON aborts the run.
func (c *Checker) load(result *Result) (*catalogue.Manifest, *rawManifest, bool) {
	data, err := os.ReadFile(c.cfg.CataloguePath)
	if err != nil {
		result.Errors = append(result.Errors, "Failed to load catalogue data")
		return nil, nil, false
	}

	var manifest catalogue.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil && !isTypeError(err) {
		result.Errors = append(result.Errors, "Failed to load catalogue data")
		return nil, nil, false
	}

	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil && !isTypeError(err) {
		result.Errors = append(result.Errors, "Failed to load catalogue data")
		return nil, nil, false
	}

	return &manifest, &raw, true
}

func isTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

func (c *Checker) now() time.Time {
	return c.cfg.Now()
}
