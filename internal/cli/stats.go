package cli

import (
	"errors"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/outsmart/catalogue/internal/catalogue"
	"github.com/outsmart/catalogue/internal/cli/runner"
	"github.com/outsmart/catalogue/internal/config"
	apperrors "github.com/outsmart/catalogue/internal/errors"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalogue statistics",
	Args:  cobra.NoArgs,
	RunE:  run.Config().Wrap(runStats),
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(ctx *runner.CommandContext, cmd *cobra.Command, args []string) error {
	manifest, err := catalogue.LoadManifest(config.CataloguePath(ctx.Config.DataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Join(apperrors.ErrCatalogueNotFound, err)
		}
		return err
	}

	stats := catalogue.Summarize(manifest)

	PrintHeader("Catalogue Statistics")
	PrintInfo("Total assets: %d", stats.TotalAssets)
	PrintInfo("Total size:   %d bytes", stats.TotalSize)
	PrintInfo("Last updated: %s", stats.LastUpdated)

	if len(stats.ByType) > 0 {
		PrintInfo("")
		PrintInfo("By type:")
		types := make([]string, 0, len(stats.ByType))
		for t := range stats.ByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			PrintInfo("  %-8s %d", t, stats.ByType[t])
		}
	}

	return nil
}
