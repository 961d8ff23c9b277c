package httpclient

import (
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/kbukum/basiczoom/logger"
)

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger used for per-attempt debug and retry warnings.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l.WithComponent("httpclient")
		}
	}
}

// WithObserver registers a callback invoked after every attempt.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithClock sets the clock used for timing and Retry-After dates.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRequestIDs overrides how X-Request-ID values are generated.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) {
		if gen != nil {
			c.newID = gen
		}
	}
}

func newRequestID() string {
	return uuid.NewString()
}
