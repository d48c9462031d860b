package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/outsmart/catalogue/internal/cli/runner"
	"github.com/outsmart/catalogue/internal/config"
	"github.com/outsmart/catalogue/internal/logging"
)

var (
	// Version is set at build time
	Version = "0.1.0"

	// App state
	dataDir string
	cfg     *config.Config
	cfgErr  error

	// run builds interceptor chains for commands
	run = runner.NewBuilder(func() (*config.Config, error) {
		return cfg, cfgErr
	})
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "Asset catalogue and trivia data toolkit",
	Long: `Catalogue manages a media asset catalogue and its companion trivia
question data: it scans asset directories into a manifest, validates the
manifest against the filesystem, downloads trivia questions from the Open
Trivia Database, and generates asset descriptions with a local Ollama
server.`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() {
	defer func() { _ = logging.Sync() }()

	if err := rootCmd.Execute(); err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}

// SetVersion sets the version string
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

func init() {
	cobra.OnInitialize(initLogging, initConfig)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "data directory holding catalogue.json and config.yaml")
}

func initLogging() {
	logging.InitDefault()
}

func initConfig() {
	cfg, cfgErr = config.Load(dataDir)
}
