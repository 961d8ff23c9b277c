package credential

import (
	"context"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/kbukum/basiczoom/httpclient"
	"github.com/kbukum/basiczoom/logger"
)

// Kind identifies an authentication scheme.
type Kind string

const (
	KindSignedToken    Kind = "signed_token"
	KindExchangedToken Kind = "exchanged_token"
	KindSession        Kind = "session"
)

// DefaultTokenURL is Zoom's OAuth token endpoint.
const DefaultTokenURL = "https://zoom.us/oauth/token"

// Provider attaches a bearer token to outbound requests.
type Provider interface {
	httpclient.Authorizer
	// Token returns a currently valid access token.
	Token(ctx context.Context) (string, error)
	// Kind reports which scheme the provider implements.
	Kind() Kind
}

var (
	_ Provider = (*SignedToken)(nil)
	_ Provider = (*ExchangedToken)(nil)
	_ Provider = (*Session)(nil)
)

// Observer is told whenever a provider obtains a fresh token.
type Observer func(kind Kind)

// Option customizes a provider.
type Option func(*options)

type options struct {
	clock    clockwork.Clock
	base     *logger.Logger
	log      *logger.Logger
	observer Observer
	tokenURL string
	client   *httpclient.Client
}

func newOptions(opts []Option) *options {
	o := &options{
		clock:    clockwork.NewRealClock(),
		base:     logger.Nop(),
		tokenURL: DefaultTokenURL,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log = o.base.WithComponent("credential")
	return o
}

// WithClock sets the clock used for expiry decisions.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.base = l
		}
	}
}

// WithObserver registers a callback for token refreshes.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// WithTokenURL overrides the OAuth token endpoint (ExchangedToken only).
func WithTokenURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.tokenURL = u
		}
	}
}

// WithHTTPClient sets the transport used for token exchange (ExchangedToken only).
func WithHTTPClient(c *httpclient.Client) Option {
	return func(o *options) { o.client = c }
}

func (o *options) refreshed(kind Kind) {
	if o.observer != nil {
		o.observer(kind)
	}
}

func setBearer(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}
