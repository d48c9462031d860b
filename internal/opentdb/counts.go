package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	apperrors "github.com/outsmart/catalogue/internal/errors"
	"github.com/outsmart/catalogue/internal/logging"
)

// CountComparison compares one category's downloaded questions against what
// the API reports as available.
type CountComparison struct {
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Available    int     `json:"available"`
	Downloaded   int     `json:"downloaded"`
	Missing      int     `json:"missing"`
	PercentDone  float64 `json:"percent_done"`
}

// CountReport is the full comparison across every downloaded category.
type CountReport struct {
	Categories      []CountComparison `json:"categories"`
	TotalAvailable  int               `json:"total_available"`
	TotalDownloaded int               `json:"total_downloaded"`
	TotalMissing    int               `json:"total_missing"`
}

// Complete reports whether every available question was downloaded.
func (r *CountReport) Complete() bool {
	return r.TotalMissing <= 0
}

// CheckCounts reads the download summary under outputDir and asks the API
// for the current available count of each downloaded category.
func CheckCounts(ctx context.Context, client *Client, outputDir string) (*CountReport, error) {
	summaryPath := filepath.Join(outputDir, "metadata", "download_summary.json")
	data, err := os.ReadFile(summaryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNoSummary
		}
		return nil, err
	}

	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", summaryPath, err)
	}

	report := &CountReport{}
	for _, cat := range summary.CategoriesSummary {
		count, err := client.QuestionCount(ctx, cat.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logging.Errorf("failed to fetch count for category %d: %v", cat.ID, err)
			count = &QuestionCount{CategoryID: cat.ID}
		}

		cmp := CountComparison{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Available:    count.Total,
			Downloaded:   cat.QuestionCount,
			Missing:      count.Total - cat.QuestionCount,
		}
		if cmp.Available > 0 {
			cmp.PercentDone = float64(cmp.Downloaded) / float64(cmp.Available) * 100
		}

		report.Categories = append(report.Categories, cmp)
		report.TotalAvailable += cmp.Available
		report.TotalDownloaded += cmp.Downloaded
		report.TotalMissing += cmp.Missing
	}

	return report, nil
}

// Fprint writes a human-readable comparison table.
func (r *CountReport) Fprint(w io.Writer) {
	fmt.Fprintf(w, "%-6s %-40s %10s %12s %9s %10s\n",
		"ID", "Category", "Available", "Downloaded", "Missing", "Complete")

	for _, c := range r.Categories {
		fmt.Fprintf(w, "%-6d %-40s %10d %12d %9d %9.1f%%\n",
			c.CategoryID, c.CategoryName, c.Available, c.Downloaded, c.Missing, c.PercentDone)
	}

	fmt.Fprintf(w, "\nTotal available:  %d\n", r.TotalAvailable)
	fmt.Fprintf(w, "Total downloaded: %d\n", r.TotalDownloaded)
	fmt.Fprintf(w, "Total missing:    %d\n", r.TotalMissing)
}
