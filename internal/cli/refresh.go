package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/outsmart/catalogue/internal/catalogue"
	"github.com/outsmart/catalogue/internal/cli/runner"
	"github.com/outsmart/catalogue/internal/config"
	"github.com/outsmart/catalogue/internal/filelock"
	"github.com/outsmart/catalogue/internal/logging"
	"github.com/outsmart/catalogue/internal/ollama"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rescan the assets directory and update the catalogue",
	Long: `Walk the assets directory and bring the catalogue in line with it:
new files are added, changed files are rescanned and deleted files are
dropped. Unchanged assets keep their metadata and AI descriptions.

With --describe, missing asset descriptions are generated using the
configured Ollama server.`,
	Example: `  catalogue refresh
  catalogue refresh --describe`,
	Args: cobra.NoArgs,
	RunE: run.Config().Wrap(runRefresh),
}

func init() {
	rootCmd.AddCommand(refreshCmd)
	refreshCmd.Flags().Bool("describe", false, "generate missing AI descriptions via Ollama")
}

func runRefresh(ctx *runner.CommandContext, cmd *cobra.Command, args []string) error {
	flags := runner.Flags(cmd)
	describe := flags.Bool("describe")
	if err := flags.Err(); err != nil {
		return err
	}

	cfg := ctx.Config
	cataloguePath := config.CataloguePath(cfg.DataDir)
	assetsDir := config.AssetsDir(cfg.DataDir)

	lock := filelock.New(cataloguePath)
	return lock.WithLock(func() error {
		manifest, err := catalogue.LoadManifest(cataloguePath)
		if err != nil {
			if !os.IsNotExist(err) {
				return err
			}
			manifest = catalogue.NewManifest()
		}

		records, err := catalogue.Scan(assetsDir, cfg.Catalogue.SupportedFormats)
		if err != nil {
			return err
		}
		manifest.Refresh(records)

		if describe {
			describeAssets(cmd.Context(), cfg, manifest)
		}

		if err := manifest.Save(cataloguePath); err != nil {
			return err
		}

		PrintSuccess("Catalogue updated: %d assets", len(manifest.Assets))
		return nil
	})
}

// describeAssets fills in missing AI descriptions. Failures are logged per
// asset; a refresh never fails because the model is down.
func describeAssets(parent context.Context, cfg *config.Config, m *catalogue.Manifest) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := ollama.NewClient(cfg.Ollama)
	if err := client.Ping(ctx); err != nil {
		PrintWarning("Skipping AI descriptions: %v", err)
		return
	}

	described := 0
	for i := range m.Assets {
		asset := &m.Assets[i]
		if asset.AIDescription != "" || asset.Type == catalogue.TypeUnknown {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		text, err := client.Generate(ctx, ollama.DescribePrompt(asset.Type, asset.Name))
		if err != nil {
			logging.Warnf("failed to describe %s: %v", asset.Path, err)
			continue
		}

		asset.AIDescription = text
		asset.AIGeneratedAt = catalogue.FormatTimestamp(time.Now())
		described++
	}

	if described > 0 {
		PrintInfo("Generated %d description(s) with %s", described, client.Model())
	}
}
