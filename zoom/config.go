package zoom

import (
	"time"

	"github.com/kbukum/basiczoom/credential"
	"github.com/kbukum/basiczoom/httpclient"
	"github.com/kbukum/basiczoom/resilience"
	"github.com/kbukum/basiczoom/validation"
	"github.com/kbukum/basiczoom/version"
)

// DefaultBaseURL is the API origin every endpoint path is appended to.
const DefaultBaseURL = "https://api.zoom.us/v2"

const (
	defaultTimeout          = 30 * time.Second
	defaultMaxRetries       = 5
	defaultMaxStatusRetries = 3
	defaultInitialBackoff   = 2 * time.Second
	defaultMaxBackoff       = 120 * time.Second
	defaultBackoffFactor    = 2.0
)

// Config configures a Client.
type Config struct {
	// BaseURL overrides DefaultBaseURL, e.g. for a proxy.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	// Timeout bounds each HTTP attempt. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	// UserAgent overrides the default client identification.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	Auth      credential.Config     `yaml:"auth" mapstructure:"auth"`
	Retry     RetryConfig           `yaml:"retry" mapstructure:"retry"`
	RateLimit RateLimitConfig       `yaml:"rate_limit" mapstructure:"rate_limit"`
	TLS       *httpclient.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// RetryConfig configures the transport retry policy.
type RetryConfig struct {
	// Disabled turns retries off entirely, as does MaxRetries 0.
	Disabled bool `yaml:"disabled" mapstructure:"disabled"`
	// MaxRetries is the number of retries after the first attempt. Nil means
	// 5; an explicit 0 sends each request once.
	MaxRetries *int `yaml:"max_retries" mapstructure:"max_retries" validate:"omitempty,gte=0,lte=10"`
	// MaxStatusRetries caps retries caused by a retry status. Defaults to 3.
	MaxStatusRetries int `yaml:"max_status_retries" mapstructure:"max_status_retries" validate:"gte=0"`
	// InitialBackoff is the first delay. Defaults to 2s.
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff" validate:"gte=0"`
	// MaxBackoff caps any delay, including a server Retry-After. Defaults to 120s.
	MaxBackoff time.Duration `yaml:"max_backoff" mapstructure:"max_backoff" validate:"gte=0"`
	// BackoffFactor multiplies the delay after each retry. Defaults to 2.
	BackoffFactor float64 `yaml:"backoff_factor" mapstructure:"backoff_factor" validate:"omitempty,gte=1"`
	// Statuses are the response statuses that are retried. Defaults to 429.
	Statuses []int `yaml:"statuses" mapstructure:"statuses" validate:"dive,gte=100,lte=599"`
}

// RateLimitConfig configures optional client-side pacing.
type RateLimitConfig struct {
	// Rate is requests per second. Zero disables the limiter.
	Rate float64 `yaml:"rate" mapstructure:"rate" validate:"gte=0"`
	// Burst is the bucket size. Defaults to the rate.
	Burst int `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
	c.Retry.ApplyDefaults()
}

// Validate checks field ranges. Credential completeness is checked when the
// provider is built.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// ApplyDefaults fills in zero-value fields.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxRetries == nil {
		n := defaultMaxRetries
		r.MaxRetries = &n
	}
	if r.MaxStatusRetries == 0 {
		r.MaxStatusRetries = defaultMaxStatusRetries
	}
	if r.InitialBackoff == 0 {
		r.InitialBackoff = defaultInitialBackoff
	}
	if r.MaxBackoff == 0 {
		r.MaxBackoff = defaultMaxBackoff
	}
	if r.BackoffFactor == 0 {
		r.BackoffFactor = defaultBackoffFactor
	}
	if len(r.Statuses) == 0 {
		r.Statuses = httpclient.DefaultRetryStatuses
	}
}

// policy converts the config into the transport's retry policy. Nil means no
// retries.
func (r RetryConfig) policy() *resilience.RetryConfig {
	retries := defaultMaxRetries
	if r.MaxRetries != nil {
		retries = *r.MaxRetries
	}
	if r.Disabled || retries == 0 {
		return nil
	}
	p := httpclient.DefaultRetryConfig()
	p.MaxAttempts = retries + 1
	p.InitialBackoff = r.InitialBackoff
	p.MaxBackoff = r.MaxBackoff
	p.BackoffFactor = r.BackoffFactor
	return p
}

func (r RateLimitConfig) limiter() *resilience.RateLimiterConfig {
	if r.Rate <= 0 {
		return nil
	}
	return &resilience.RateLimiterConfig{Name: "zoom", Rate: r.Rate, Burst: r.Burst}
}
