package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/basiczoom/resilience"
)

const (
	defaultTimeout          = 30 * time.Second
	defaultMaxStatusRetries = 3
)

// DefaultRetryMethods are the verbs retried by default. POST and PATCH are
// included because the only retried statuses are throttling responses, which
// the server rejects before acting on the request.
var DefaultRetryMethods = []string{
	http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete,
}

// DefaultRetryStatuses are the response statuses that trigger a retry.
var DefaultRetryStatuses = []int{http.StatusTooManyRequests}

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each attempt. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent on every request unless a request overrides it.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// RetryStatuses lists response statuses that are retried. Defaults to 429.
	RetryStatuses []int `yaml:"retry_statuses" mapstructure:"retry_statuses"`

	// MaxStatusRetries caps how many retries a status response may trigger
	// within one call. Defaults to 3.
	MaxStatusRetries int `yaml:"max_status_retries" mapstructure:"max_status_retries"`

	// RetryMethods lists the verbs eligible for retry.
	RetryMethods []string `yaml:"retry_methods" mapstructure:"retry_methods"`

	// RateLimiter configures client-side pacing. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if len(c.RetryStatuses) == 0 {
		c.RetryStatuses = DefaultRetryStatuses
	}
	if c.MaxStatusRetries == 0 {
		c.MaxStatusRetries = defaultMaxStatusRetries
	}
	if len(c.RetryMethods) == 0 {
		c.RetryMethods = DefaultRetryMethods
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.MaxStatusRetries < 0 {
		return fmt.Errorf("httpclient: max_status_retries must not be negative")
	}
	for _, s := range c.RetryStatuses {
		if s < 100 || s > 599 {
			return fmt.Errorf("httpclient: invalid retry status %d", s)
		}
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultRetryConfig returns a default retry config suitable for HTTP clients:
// retryable transport errors are retried and Retry-After is honored.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	cfg.BackoffHint = RetryAfterHint
	return &cfg
}

// DefaultRateLimiterConfig returns a default rate limiter config.
func DefaultRateLimiterConfig(name string) *resilience.RateLimiterConfig {
	cfg := resilience.DefaultRateLimiterConfig(name)
	return &cfg
}
