package cli

import (
	"github.com/spf13/cobra"

	"github.com/outsmart/catalogue/internal/cli/runner"
	"github.com/outsmart/catalogue/internal/ollama"
)

var ollamaCmd = &cobra.Command{
	Use:   "ollama",
	Short: "Test the Ollama connection and model availability",
	Args:  cobra.NoArgs,
	RunE:  run.Config().Wrap(runOllama),
}

func init() {
	rootCmd.AddCommand(ollamaCmd)
	ollamaCmd.Flags().String("host", "", "Ollama host URL (overrides config)")
	ollamaCmd.Flags().String("model", "", "Ollama model to check (overrides config)")
}

func runOllama(ctx *runner.CommandContext, cmd *cobra.Command, args []string) error {
	flags := runner.Flags(cmd)
	host := flags.String("host")
	model := flags.String("model")
	if err := flags.Err(); err != nil {
		return err
	}

	cfg := ctx.Config.Ollama
	if host != "" {
		cfg.Host = host
	}
	if model != "" {
		cfg.Model = model
	}

	client := ollama.NewClient(cfg)
	models, err := client.Models(cmd.Context())
	if err != nil {
		return err
	}

	PrintSuccess("Connected to Ollama at %s", cfg.Host)
	PrintInfo("Available models: %d", len(models))
	for _, m := range models {
		PrintInfo("  %s", m.Name)
	}

	if err := client.Ping(cmd.Context()); err != nil {
		return err
	}
	PrintSuccess("Model %q is available", cfg.Model)
	return nil
}
