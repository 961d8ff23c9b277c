// Package validation checks configuration and call arguments.
//
// Struct tag validation (go-playground/validator) is used for configuration
// structs and reports fields by their config key:
//
//	type RetryConfig struct {
//	    MaxRetries int `mapstructure:"max_retries" validate:"gte=0,lte=10"`
//	}
//	err := validation.Validate(cfg) // INVALID_CONFIG
//
// Programmatic validation collects errors for call arguments:
//
//	err := validation.New().
//	    Required("endpoint", endpoint).
//	    Pattern("endpoint", endpoint, `^/`).
//	    Err() // INVALID_INPUT
package validation
