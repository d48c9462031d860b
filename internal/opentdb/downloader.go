package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/outsmart/catalogue/internal/config"
	apperrors "github.com/outsmart/catalogue/internal/errors"
	"github.com/outsmart/catalogue/internal/logging"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapsePattern = regexp.MustCompile(`[-\s]+`)
)

// Slugify turns a category name into a directory name: special characters
// removed, spaces and hyphens collapsed to underscores, lowercased.
func Slugify(name string) string {
	s := strings.TrimSpace(slugStripPattern.ReplaceAllString(name, ""))
	s = slugCollapsePattern.ReplaceAllString(s, "_")
	return strings.ToLower(s)
}

// Downloader drives a full or single-category download. Output layout:
//
//	<output>/categories/<slug>/questions.json
//	<output>/metadata/categories.json
//	<output>/metadata/download_summary.json
//	<output>/tokens/global_token.json
type Downloader struct {
	client      *Client
	store       *TokenStore
	cfg         config.DownloaderConfig
	outputDir   string
	resetTokens bool
}

// NewDownloader creates a downloader writing under outputDir. When
// resetTokens is set the stored session token is discarded and a fresh one
// requested before the first batch.
func NewDownloader(cfg config.DownloaderConfig, outputDir string, resetTokens bool) *Downloader {
	return &Downloader{
		client:      NewClient(cfg),
		store:       NewTokenStore(filepath.Join(outputDir, "tokens")),
		cfg:         cfg,
		outputDir:   outputDir,
		resetTokens: resetTokens,
	}
}

// Run downloads all categories, or just categoryID when it is non-zero.
// It always writes whatever summary it can; ErrDownloadIncomplete is
// returned when any category failed or produced no questions.
func (d *Downloader) Run(ctx context.Context, categoryID int, dryRun bool) (*DownloadStats, error) {
	stats := &DownloadStats{
		RunID:     uuid.NewString(),
		StartTime: time.Now().UTC(),
	}

	for _, dir := range []string{"categories", "metadata", "tokens"} {
		if err := os.MkdirAll(filepath.Join(d.outputDir, dir), 0755); err != nil {
			return stats, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	logging.Info("fetching categories")
	categories, err := d.client.Categories(ctx)
	if err != nil {
		return stats, err
	}
	if err := d.writeJSON(filepath.Join("metadata", "categories.json"), categories); err != nil {
		return stats, err
	}
	logging.Infof("found %d categories", len(categories))

	if categoryID != 0 {
		target, ok := findCategory(categories, categoryID)
		if !ok {
			for _, cat := range categories {
				logging.Infof("  %d: %s", cat.ID, cat.Name)
			}
			return stats, fmt.Errorf("%w: id %d", apperrors.ErrCategoryNotFound, categoryID)
		}
		categories = []Category{target}

		if count, err := d.client.QuestionCount(ctx, categoryID); err == nil {
			logging.Infof("category %q has %d questions (easy %d, medium %d, hard %d)",
				target.Name, count.Total, count.Easy, count.Medium, count.Hard)
		}
	}

	stats.TotalCategories = len(categories)

	if dryRun {
		for _, cat := range categories {
			logging.Infof("would download category %d: %s", cat.ID, cat.Name)
		}
		return stats, nil
	}

	var summaries []CategorySummary
	incomplete := false

	for _, cat := range categories {
		data, err := d.downloadCategory(ctx, cat)
		if err != nil {
			logging.Errorf("category %d (%s) failed: %v", cat.ID, cat.Name, err)
			stats.FailedRequests++
			incomplete = true
			if ctx.Err() != nil {
				break
			}
			continue
		}

		stats.CompletedCategories++
		stats.DownloadedQuestions += data.Statistics.TotalQuestions
		if data.Statistics.TotalQuestions == 0 {
			incomplete = true
		}

		summaries = append(summaries, CategorySummary{
			Name:          data.CategoryName,
			ID:            data.CategoryID,
			QuestionCount: data.Statistics.TotalQuestions,
			Statistics:    data.Statistics,
		})
	}

	end := time.Now().UTC()
	stats.EndTime = &end

	total := 0
	for _, s := range summaries {
		total += s.QuestionCount
	}
	summary := Summary{
		DownloadStats:     *stats,
		CategoriesSummary: summaries,
		TotalQuestions:    total,
	}
	if err := d.writeJSON(filepath.Join("metadata", "download_summary.json"), summary); err != nil {
		return stats, err
	}

	if ctx.Err() != nil {
		return stats, ctx.Err()
	}
	if incomplete {
		return stats, apperrors.ErrDownloadIncomplete
	}
	return stats, nil
}

// downloadCategory pulls every question for one category and writes its
// questions.json.
func (d *Downloader) downloadCategory(ctx context.Context, cat Category) (*CategoryData, error) {
	token, err := d.token(ctx)
	if err != nil {
		return nil, err
	}

	data := &CategoryData{
		CategoryID:        cat.ID,
		CategoryName:      cat.Name,
		DownloadTimestamp: time.Now().UTC(),
		Questions:         []Question{},
		Statistics: CategoryStatistics{
			ByDifficulty: map[string]int{"easy": 0, "medium": 0, "hard": 0},
			ByType:       map[string]int{"multiple": 0, "boolean": 0},
		},
	}

	batch := 0
loop:
	for {
		batch++
		code, questions, err := d.fetchWithRetry(ctx, cat.ID, token)
		if err != nil {
			return nil, err
		}

		logging.Debugf("category %d batch %d: code %d (%s), %d questions",
			cat.ID, batch, code, ResponseCodeName(code), len(questions))

		switch code {
		case CodeSuccess:
			if len(questions) == 0 {
				// Success with no results means the category is drained
				break loop
			}
			for _, q := range questions {
				data.Questions = append(data.Questions, q)
				data.Statistics.TotalQuestions++
				data.Statistics.ByDifficulty[q.Difficulty]++
				data.Statistics.ByType[q.Type]++
			}
			logging.Infof("category %d: %d questions so far", cat.ID, data.Statistics.TotalQuestions)

		case CodeNoResults:
			break loop

		case CodeTokenEmpty:
			// The token has served every question it tracks. Resetting
			// clears its server-side history; the token itself stays valid.
			logging.Warnf("category %d: session token exhausted after %d questions, resetting",
				cat.ID, data.Statistics.TotalQuestions)
			if err := d.client.ResetToken(ctx, token); err != nil {
				return nil, fmt.Errorf("token reset failed: %w", err)
			}

		default:
			return nil, fmt.Errorf("api error: code %d (%s)", code, ResponseCodeName(code))
		}
	}

	slug := Slugify(cat.Name)
	rel := filepath.Join("categories", slug, "questions.json")
	if err := d.writeJSON(rel, data); err != nil {
		return nil, err
	}

	logging.Infof("category %d (%s): wrote %d questions", cat.ID, cat.Name, data.Statistics.TotalQuestions)
	return data, nil
}

// fetchWithRetry retries transport failures with exponential backoff. API
// level response codes are not retried here; the batch loop handles them.
func (d *Downloader) fetchWithRetry(ctx context.Context, categoryID int, token string) (int, []Question, error) {
	maxRetries := d.cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	base := time.Duration(d.cfg.RetryBackoffSeconds) * time.Second
	if base <= 0 {
		base = 10 * time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := base << (attempt - 1)
			logging.Warnf("category %d: retry %d/%d after %s: %v",
				categoryID, attempt, maxRetries, backoff, lastErr)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return -1, nil, ctx.Err()
			}
		}

		code, questions, err := d.client.FetchBatch(ctx, categoryID, token)
		if err == nil {
			return code, questions, nil
		}
		if ctx.Err() != nil {
			return -1, nil, ctx.Err()
		}
		lastErr = err
	}

	return -1, nil, fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

// token returns the session token to use, requesting and persisting a fresh
// one when none is stored or a reset was asked for.
func (d *Downloader) token(ctx context.Context) (string, error) {
	if d.resetTokens {
		if err := d.store.Clear(); err != nil {
			logging.Warnf("failed to clear stored token: %v", err)
		}
		d.resetTokens = false
	} else if token := d.store.Load(); token != "" {
		return token, nil
	}

	token, err := d.client.RequestToken(ctx)
	if err != nil {
		return "", err
	}
	if err := d.store.Save(token); err != nil {
		logging.Warnf("failed to persist session token: %v", err)
	}
	return token, nil
}

func (d *Downloader) writeJSON(rel string, v any) error {
	full := filepath.Join(d.outputDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(full, data, 0644)
}

func findCategory(categories []Category, id int) (Category, bool) {
	for _, cat := range categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}
