package config

import (
	"fmt"

	"github.com/kbukum/basiczoom/logger"
)

// AppConfig contains the fields every command-line tool built on this module
// needs. Tools extend it by embedding it in their own config structs.
//
// Example:
//
//	type Config struct {
//	    config.AppConfig `yaml:",inline" mapstructure:",squash"`
//	    Zoom zoom.Config `yaml:"zoom" mapstructure:"zoom"`
//	}
type AppConfig struct {
	Name    string        `yaml:"name" mapstructure:"name"`
	Debug   bool          `yaml:"debug" mapstructure:"debug"`
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetAppConfig returns the base AppConfig. When embedded, this method is
// promoted so the embedding struct satisfies the same accessor.
func (c *AppConfig) GetAppConfig() *AppConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
// Override this in embedding structs and call c.AppConfig.ApplyDefaults() first.
func (c *AppConfig) ApplyDefaults() {
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
// Override this in embedding structs and call c.AppConfig.Validate() first.
func (c *AppConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
