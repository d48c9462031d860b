package cli

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/outsmart/catalogue/internal/cli/runner"
	"github.com/outsmart/catalogue/internal/opentdb"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download trivia questions from the Open Trivia Database",
	Long: `Download all trivia questions, organized by category, respecting
the API's rate limit of one request per five seconds. A persisted session
token lets interrupted downloads resume without duplicates.`,
	Example: `  catalogue download
  catalogue download --category 9
  catalogue download --dry-run
  catalogue download --reset-tokens --output-dir /srv/trivia`,
	Args: cobra.NoArgs,
	RunE: run.Config().Wrap(runDownload),
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().String("output-dir", "", "output directory (default <data-dir>/../raw/opentdb)")
	downloadCmd.Flags().Bool("reset-tokens", false, "discard the stored session token before downloading")
	downloadCmd.Flags().Bool("dry-run", false, "list what would be downloaded without downloading")
	downloadCmd.Flags().Int("category", 0, "download only this category ID (e.g. 9 for General Knowledge)")
}

// defaultDownloadDir places downloads next to the data directory.
func defaultDownloadDir(dataDir string) string {
	return filepath.Join(filepath.Dir(dataDir), "raw", "opentdb")
}

func runDownload(ctx *runner.CommandContext, cmd *cobra.Command, args []string) error {
	flags := runner.Flags(cmd)
	outputDir := flags.String("output-dir")
	resetTokens := flags.Bool("reset-tokens")
	dryRun := flags.Bool("dry-run")
	categoryID := flags.Int("category")
	if err := flags.Err(); err != nil {
		return err
	}

	if outputDir == "" {
		outputDir = defaultDownloadDir(ctx.Config.DataDir)
	}

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	PrintHeader("OpenTDB Question Downloader")
	PrintInfo("Output directory: %s", outputDir)
	if dryRun {
		PrintWarning("DRY RUN MODE - no data will be downloaded")
	}

	d := opentdb.NewDownloader(ctx.Config.Downloader, outputDir, resetTokens)
	stats, err := d.Run(sigCtx, categoryID, dryRun)

	printDownloadSummary(stats)
	if err != nil {
		return err
	}

	PrintSuccess("Downloaded %d questions", stats.DownloadedQuestions)
	return nil
}

func printDownloadSummary(stats *opentdb.DownloadStats) {
	PrintInfo("")
	PrintHeader("Download Summary")
	PrintInfo("Total categories:     %d", stats.TotalCategories)
	PrintInfo("Completed categories: %d", stats.CompletedCategories)
	PrintInfo("Questions downloaded: %d", stats.DownloadedQuestions)
	PrintInfo("Failed requests:      %d", stats.FailedRequests)
	if stats.EndTime != nil {
		PrintInfo("Duration:             %s", stats.EndTime.Sub(stats.StartTime).Truncate(time.Second))
	}
}
