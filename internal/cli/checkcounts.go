package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/outsmart/catalogue/internal/cli/runner"
	"github.com/outsmart/catalogue/internal/opentdb"
)

var checkCountsCmd = &cobra.Command{
	Use:   "check-counts",
	Short: "Compare downloaded question counts with the API",
	Long: `Fetch the current available question counts from the Open Trivia
Database and compare them against the last download summary, category by
category, to spot incomplete downloads.`,
	Args: cobra.NoArgs,
	RunE: run.Config().Wrap(runCheckCounts),
}

func init() {
	rootCmd.AddCommand(checkCountsCmd)
	checkCountsCmd.Flags().String("output-dir", "", "download directory to check (default <data-dir>/../raw/opentdb)")
}

func runCheckCounts(ctx *runner.CommandContext, cmd *cobra.Command, args []string) error {
	flags := runner.Flags(cmd)
	outputDir := flags.String("output-dir")
	if err := flags.Err(); err != nil {
		return err
	}

	if outputDir == "" {
		outputDir = defaultDownloadDir(ctx.Config.DataDir)
	}

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	PrintHeader("OpenTDB Question Count Checker")
	PrintInfo("Fetching available question counts from API...")
	PrintInfo("")

	client := opentdb.NewClient(ctx.Config.Downloader)
	report, err := opentdb.CheckCounts(sigCtx, client, outputDir)
	if err != nil {
		return err
	}

	report.Fprint(os.Stdout)

	if !report.Complete() {
		return fmt.Errorf("%d question(s) missing - rerun the download", report.TotalMissing)
	}

	PrintSuccess("All available questions downloaded")
	return nil
}
