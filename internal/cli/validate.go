package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/outsmart/catalogue/internal/cli/runner"
	"github.com/outsmart/catalogue/internal/config"
	"github.com/outsmart/catalogue/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [data-dir]",
	Short: "Validate the asset catalogue",
	Long: `Check the catalogue manifest against its schema, its internal
invariants and the assets on disk. Errors make the catalogue untrusted and
fail the command; warnings are reported but do not.`,
	Example: `  catalogue validate
  catalogue validate /srv/media/data
  catalogue validate --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: run.Config().Wrap(runValidate),
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "emit the full result as JSON")
}

func runValidate(ctx *runner.CommandContext, cmd *cobra.Command, args []string) error {
	flags := runner.Flags(cmd)
	asJSON := flags.Bool("json")
	if err := flags.Err(); err != nil {
		return err
	}

	cfg := ctx.Config
	dir := cfg.DataDir
	if len(args) > 0 {
		dir = args[0]
		// A positional data dir gets its own config so tolerances follow it
		override, err := config.Load(dir)
		if err == nil {
			cfg = override
		}
	}

	checker, err := validate.NewChecker(validate.Config{
		CataloguePath:       config.CataloguePath(dir),
		AssetsDir:           config.AssetsDir(dir),
		ModTimeTolerance:    time.Duration(cfg.Validation.ModTimeToleranceMS) * time.Millisecond,
		Staleness:           time.Duration(cfg.Validation.StalenessDays) * 24 * time.Hour,
		MinAssetSize:        cfg.Validation.MinAssetSize,
		MaxAssetSize:        cfg.Validation.MaxAssetSize,
		SupportedExtensions: cfg.Catalogue.SupportedFormats,
	})
	if err != nil {
		return err
	}

	result := checker.Run()

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		result.Fprint(os.Stdout)
	}

	if !result.Success {
		return fmt.Errorf("catalogue validation failed with %d error(s)", len(result.Errors))
	}
	return nil
}
