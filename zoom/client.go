package zoom

import (
	"context"
	"net/http"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/basiczoom/credential"
	"github.com/kbukum/basiczoom/httpclient"
	"github.com/kbukum/basiczoom/logger"
	"github.com/kbukum/basiczoom/observability"
	"github.com/kbukum/basiczoom/validation"
)

// Client calls the Zoom REST API.
//
// A Client is safe for concurrent use; credential providers serialize token
// refreshes internally.
type Client struct {
	http     *httpclient.Client
	exchange *httpclient.Client
	provider credential.Provider
	log      *logger.Logger
	clock    clockwork.Clock
	tracer   trace.Tracer
	metrics  *observability.Metrics
}

// New builds a Client. The credential provider is chosen from cfg.Auth
// unless WithCredential supplies one; with neither complete credentials nor a
// token source New returns an INVALID_CONFIG error.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	metrics, err := observability.NewMetrics(o.meterProvider.Meter(observability.MeterName))
	if err != nil {
		return nil, err
	}

	observe := httpclient.WithObserver(func(ev httpclient.Event) {
		metrics.RecordRequest(context.Background(), ev.Method, ev.StatusCode, ev.Duration)
	})

	var exchange *httpclient.Client
	provider := o.provider
	if provider == nil {
		auth := cfg.Auth
		if auth.TokenSource == nil {
			auth.TokenSource = o.tokenSource
		}
		// The token exchange shares the API transport settings and metrics.
		exchange, err = newTransport(cfg, nil, o.log, observe)
		if err != nil {
			return nil, err
		}
		provider, err = credential.New(auth,
			credential.WithLogger(o.log),
			credential.WithClock(o.clock),
			credential.WithHTTPClient(exchange),
			credential.WithObserver(func(kind credential.Kind) {
				metrics.RecordRefresh(context.Background(), string(kind))
			}),
		)
		if err != nil {
			return nil, err
		}
	}

	transport, err := newTransport(cfg, httpclient.DynamicAuth(provider), o.log, observe)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:     transport,
		exchange: exchange,
		provider: provider,
		log:      o.log.WithComponent("zoom"),
		clock:    o.clock,
		tracer:   o.tracerProvider.Tracer(observability.TracerName),
		metrics:  metrics,
	}, nil
}

// newTransport builds an HTTP client from cfg. auth may be nil when requests
// carry their own credentials.
func newTransport(cfg Config, auth *httpclient.AuthConfig, log *logger.Logger, observe httpclient.Option) (*httpclient.Client, error) {
	return httpclient.New(httpclient.Config{
		BaseURL:          cfg.BaseURL,
		Timeout:          cfg.Timeout,
		UserAgent:        cfg.UserAgent,
		Auth:             auth,
		TLS:              cfg.TLS,
		Headers:          map[string]string{"Accept": "application/json"},
		Retry:            cfg.Retry.policy(),
		RetryStatuses:    cfg.Retry.Statuses,
		MaxStatusRetries: cfg.Retry.MaxStatusRetries,
		RateLimiter:      cfg.RateLimit.limiter(),
	}, httpclient.WithLogger(log), observe)
}

// Credential returns the provider authenticating the client's requests.
func (c *Client) Credential() credential.Provider {
	return c.provider
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.Close()
	if c.exchange != nil {
		c.exchange.Close()
	}
}

// Post creates a resource. body is sent as JSON; nil sends no body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Result, error) {
	return c.call(ctx, http.MethodPost, endpoint, nil, body)
}

// Put replaces a resource. body is sent as JSON; nil sends no body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (*Result, error) {
	return c.call(ctx, http.MethodPut, endpoint, nil, body)
}

// Patch updates a resource. Both query parameters and a JSON body are sent.
func (c *Client) Patch(ctx context.Context, endpoint string, params Params, body any) (*Result, error) {
	return c.call(ctx, http.MethodPatch, endpoint, params.clone(), body)
}

// Delete removes a resource.
func (c *Client) Delete(ctx context.Context, endpoint string) (*Result, error) {
	return c.call(ctx, http.MethodDelete, endpoint, nil, nil)
}

// call runs one traced request for the write verbs.
func (c *Client) call(ctx context.Context, method, endpoint string, params Params, body any) (res *Result, err error) {
	if err := validateEndpoint(endpoint); err != nil {
		return nil, err
	}
	ctx, op := observability.StartOperation(ctx, c.tracer, c.clock, c.metrics, spanName(method), endpoint)
	defer func() {
		op.End(ctx, err, errorType(err))
		c.logDone(op, err)
	}()
	return c.send(ctx, method, endpoint, params, body)
}

// send issues a single transport call and normalizes the response.
func (c *Client) send(ctx context.Context, method, endpoint string, params Params, body any) (*Result, error) {
	req := httpclient.Request{
		Method: method,
		Path:   endpoint,
		Query:  params,
		Body:   body,
	}
	if body != nil {
		req.Headers = map[string]string{"Content-Type": "application/json"}
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return Normalize(resp)
}

func (c *Client) logDone(op *observability.Operation, err error) {
	fields := logger.DurationFields(op.Name, op.Duration())
	fields[logger.FieldEndpoint] = op.Endpoint
	if err != nil {
		fields[logger.FieldError] = err.Error()
		c.log.Debug("zoom call failed", fields)
		return
	}
	c.log.Debug("zoom call completed", fields)
}

func validateEndpoint(endpoint string) error {
	return validation.New().
		Required("endpoint", endpoint).
		Pattern("endpoint", endpoint, `^/`).
		Err()
}

func spanName(method string) string {
	switch method {
	case http.MethodGet:
		return "zoom.get"
	case http.MethodPost:
		return "zoom.post"
	case http.MethodPut:
		return "zoom.put"
	case http.MethodPatch:
		return "zoom.patch"
	case http.MethodDelete:
		return "zoom.delete"
	default:
		return "zoom.request"
	}
}
