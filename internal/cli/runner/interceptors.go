package runner

import (
	"github.com/spf13/cobra"

	"github.com/outsmart/catalogue/internal/logging"
)

// Interceptor is a function that wraps command execution.
type Interceptor func(ctx *CommandContext, cmd *cobra.Command, args []string, next func() error) error

// RequireConfig ensures the configuration is loaded before executing the
// command.
func RequireConfig() Interceptor {
	return func(ctx *CommandContext, cmd *cobra.Command, args []string, next func() error) error {
		if ctx.ConfigErr != nil {
			return ctx.ConfigErr
		}
		if ctx.Config == nil {
			return ErrNoConfig
		}
		return next()
	}
}

// WithLogging logs command execution.
func WithLogging() Interceptor {
	return func(ctx *CommandContext, cmd *cobra.Command, args []string, next func() error) error {
		logging.Debug("CLI command", logging.String("cmd", cmd.Name()))
		err := next()
		if err != nil {
			logging.Debug("CLI error", logging.String("cmd", cmd.Name()), logging.Err(err))
		}
		return err
	}
}

// AllowMissingConfig marks that this command can run without configuration.
// This is a no-op interceptor that documents intent.
func AllowMissingConfig() Interceptor {
	return func(ctx *CommandContext, cmd *cobra.Command, args []string, next func() error) error {
		return next()
	}
}
