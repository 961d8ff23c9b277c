package main

import (
	"fmt"

	"github.com/kbukum/basiczoom/config"
	"github.com/kbukum/basiczoom/observability"
	"github.com/kbukum/basiczoom/zoom"
)

const appName = "zoomctl"

// Config is the zoomctl configuration file layout.
//
//	name: zoomctl
//	logging:
//	  level: debug
//	zoom:
//	  auth:
//	    account_id: ...
//	    client_id: ...
//	    client_secret: ...
//	telemetry:
//	  exporter: stdout
type Config struct {
	config.AppConfig `yaml:",inline" mapstructure:",squash"`

	Zoom      zoom.Config          `yaml:"zoom" mapstructure:"zoom"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = appName
	}
	c.AppConfig.ApplyDefaults()
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	c.Telemetry.ApplyDefaults()
}

// Validate checks the config. The zoom section is validated by zoom.New.
func (c *Config) Validate() error {
	if err := c.AppConfig.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("config.telemetry: %w", err)
	}
	return nil
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	opts := []config.LoaderOption{config.WithEnvPrefix("ZOOM")}
	if path != "" {
		if !(&config.RealFileSystem{}).Exists(path) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		opts = append(opts, config.WithConfigFile(path))
	}
	if err := config.LoadConfig(appName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
