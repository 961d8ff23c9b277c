package zoom

import (
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	"github.com/kbukum/basiczoom/credential"
	"github.com/kbukum/basiczoom/logger"
)

// Option customizes a Client.
type Option func(*options)

type options struct {
	log            *logger.Logger
	clock          clockwork.Clock
	provider       credential.Provider
	tokenSource    oauth2.TokenSource
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

func newOptions(opts []Option) *options {
	o := &options{
		log:   logger.Nop(),
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	return o
}

// WithLogger sets the logger shared by the client, its transport and its
// credential provider.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock sets the clock used for token expiry and call timing.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithCredential authenticates with p instead of building a provider from
// Config.Auth.
func WithCredential(p credential.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithTokenSource supplies the caller-managed OAuth session used when
// Config.Auth holds no signed or exchanged credentials.
func WithTokenSource(src oauth2.TokenSource) Option {
	return func(o *options) { o.tokenSource = src }
}

// WithMeterProvider sets where client metrics are recorded. Defaults to the
// global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithTracerProvider sets where client spans are recorded. Defaults to the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}
