package observability

import (
	"fmt"
	"time"

	"github.com/kbukum/basiczoom/validation"
	"github.com/kbukum/basiczoom/version"
)

// Exporter names.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config selects where metrics and traces go.
type Config struct {
	// Exporter is one of none, stdout, otlp. Defaults to none.
	Exporter string `yaml:"exporter" mapstructure:"exporter" validate:"omitempty,oneof=none stdout otlp"`
	// ServiceName is reported as service.name.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is reported as service.version.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows plain HTTP to the OTLP endpoint.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
	// SampleRate is the trace sampling rate. Zero means 1.0.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// DefaultConfig returns a config for a local OTLP collector.
func DefaultConfig(serviceName string) Config {
	cfg := Config{ServiceName: serviceName, Exporter: ExporterOTLP, Insecure: true}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Exporter == "" {
		c.Exporter = ExporterNone
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = version.Version
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// Validate checks the config.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.Exporter != ExporterNone && c.ServiceName == "" {
		return fmt.Errorf("observability: service_name is required when exporting")
	}
	return nil
}
