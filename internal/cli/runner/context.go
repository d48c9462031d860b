package runner

import (
	"fmt"

	"github.com/outsmart/catalogue/internal/config"
)

// CommandContext provides shared dependencies to command handlers.
type CommandContext struct {
	// Config is the loaded configuration (may be nil if loading failed)
	Config *config.Config

	// ConfigErr is the error from loading config, if any
	ConfigErr error
}

// NewContext creates a new CommandContext with the given config.
func NewContext(cfg *config.Config, cfgErr error) *CommandContext {
	return &CommandContext{
		Config:    cfg,
		ConfigErr: cfgErr,
	}
}

// HasConfig returns true if config is loaded successfully.
func (c *CommandContext) HasConfig() bool {
	return c.Config != nil && c.ConfigErr == nil
}

// DataDir returns the configured data directory.
func (c *CommandContext) DataDir() string {
	if c.Config == nil {
		return ""
	}
	return c.Config.DataDir
}

// SaveConfig saves the configuration with standardized error wrapping.
func (c *CommandContext) SaveConfig() error {
	if c.Config == nil {
		return ErrNoConfig
	}
	if err := c.Config.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
