package jwt

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

// SigningMethod defines supported JWT signing algorithms.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// Config configures the JWT token service.
type Config struct {
	// Secret is the HMAC signing key.
	Secret string

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod

	// Issuer is the "iss" claim. When set, parsed tokens must carry it.
	Issuer string

	// TTL is the lifetime of issued tokens (default: 60m).
	TTL time.Duration

	// Clock supplies the current time for issuing and validating tokens.
	Clock clockwork.Clock
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TTL == 0 {
		c.TTL = 60 * time.Minute
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
}

// Validate checks required fields based on the signing method.
func (c *Config) Validate() error {
	switch c.Method {
	case HS256, HS384, HS512:
		if c.Secret == "" {
			return errors.New("secret is required for HMAC signing methods")
		}
	default:
		return errors.New("unsupported signing method: " + string(c.Method))
	}
	if c.TTL < 0 {
		return errors.New("ttl must not be negative")
	}
	return nil
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}
