package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/kbukum/basiczoom/logger"
	"github.com/kbukum/basiczoom/resilience"
)

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// Client is a configurable HTTP client with built-in auth, TLS, retry and
// rate limiting.
type Client struct {
	httpClient *http.Client
	config     Config
	rl         *resilience.RateLimiter
	log        *logger.Logger
	observer   Observer
	clock      clockwork.Clock
	newID      func() string
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		log:    logger.Nop(),
		clock:  clockwork.NewRealClock(),
		newID:  newRequestID,
	}

	for _, opt := range opts {
		opt(c)
	}

	if cfg.RateLimiter != nil {
		rlCfg := *cfg.RateLimiter
		if rlCfg.Clock == nil {
			rlCfg.Clock = c.clock
		}
		c.rl = resilience.NewRateLimiter(rlCfg)
	}

	return c, nil
}

// Do executes an HTTP request and returns the complete response.
//
// Any received status is returned as a Response with a nil error, except a
// status listed in RetryStatuses that is still failing once the retry budget
// is spent. That case yields the last Response and an ErrCodeRetryExhausted
// error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("encode body: %v", err))
	}

	requestID := req.Headers[RequestIDHeader]
	if requestID == "" {
		requestID = c.newID()
	}

	attempts := 0
	send := func() (*Response, error) {
		attempts++
		return c.attempt(ctx, req, body, contentType, requestID, attempts)
	}

	if c.config.Retry == nil || !slices.Contains(c.config.RetryMethods, strings.ToUpper(req.Method)) {
		resp, err := send()
		var e *Error
		if errors.As(err, &e) && e.StatusCode > 0 {
			// Without a retry budget a throttled status is just a response.
			err = nil
		}
		return c.finish(resp, err, attempts)
	}

	resp, err := resilience.Retry(ctx, c.retryPolicy(req, requestID), send)
	return c.finish(resp, err, attempts)
}

// retryPolicy derives the per-call retry config. Status retries are counted
// separately so a throttled endpoint cannot consume the whole budget.
func (c *Client) retryPolicy(req Request, requestID string) resilience.RetryConfig {
	cfg := *c.config.Retry
	if cfg.Clock == nil {
		cfg.Clock = c.clock
	}
	if cfg.BackoffHint == nil {
		cfg.BackoffHint = RetryAfterHint
	}

	retryIf := cfg.RetryIf
	if retryIf == nil {
		retryIf = IsRetryable
	}
	statusRetries := 0
	cfg.RetryIf = func(err error) bool {
		if !retryIf(err) {
			return false
		}
		var e *Error
		if errors.As(err, &e) && e.StatusCode > 0 {
			if statusRetries >= c.config.MaxStatusRetries {
				return false
			}
			statusRetries++
		}
		return true
	}

	onRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		c.log.Warn("retrying request", logger.Fields(
			"method", req.Method,
			"path", req.Path,
			"attempt", attempt,
			"backoff", backoff.String(),
			logger.FieldRequestID, requestID,
			logger.FieldError, err.Error(),
		))
		if onRetry != nil {
			onRetry(attempt, err, backoff)
		}
	}
	return cfg
}

// finish converts a surviving retryable status error into ErrCodeRetryExhausted.
func (c *Client) finish(resp *Response, err error, attempts int) (*Response, error) {
	if resp != nil {
		resp.Attempts = attempts
	}
	var e *Error
	if err != nil && errors.As(err, &e) && e.StatusCode > 0 && e.Code != ErrCodeRetryExhausted {
		return resp, NewRetryExhaustedError(e, attempts)
	}
	return resp, err
}

// attempt sends the request once, honoring the rate limiter.
func (c *Client) attempt(ctx context.Context, req Request, body []byte, contentType, requestID string, n int) (*Response, error) {
	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			return nil, err
		}
	}

	start := c.clock.Now()
	resp, err := c.executeRequest(ctx, req, body, contentType, requestID)
	elapsed := c.clock.Since(start)

	ev := Event{
		Method:    req.Method,
		Path:      req.Path,
		Attempt:   n,
		RequestID: requestID,
		Duration:  elapsed,
		Err:       err,
	}
	fields := logger.Fields(
		"method", req.Method,
		"path", req.Path,
		"attempt", n,
		logger.FieldRequestID, requestID,
		logger.FieldDuration, elapsed.Milliseconds(),
	)
	if resp != nil {
		ev.StatusCode = resp.StatusCode
		fields[logger.FieldStatus] = resp.StatusCode
	}
	if err != nil {
		fields[logger.FieldError] = err.Error()
	}
	c.log.Debug("http request", fields)
	if c.observer != nil {
		c.observer(ev)
	}

	return resp, err
}

// executeRequest builds and sends the HTTP request.
func (c *Client) executeRequest(ctx context.Context, req Request, body []byte, contentType, requestID string) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req, body, contentType, requestID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       respBody,
		URL:        httpReq.URL.String(),
		RequestID:  requestID,
	}

	if slices.Contains(c.config.RetryStatuses, resp.StatusCode) {
		statusErr := ClassifyStatusCode(resp.StatusCode, respBody)
		statusErr.Retryable = true
		if d, ok := parseRetryAfter(resp.Header.Get("Retry-After"), c.clock.Now()); ok {
			statusErr.RetryAfter = d
		}
		return result, statusErr
	}

	return result, nil
}

// classifyTransportError maps a failed round trip onto an Error. Caller
// cancellation is terminal, per-attempt timeouts are retried.
func classifyTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		e := NewTimeoutError(err)
		e.Retryable = false
		return e
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request, body []byte, contentType, requestID string) (*http.Request, error) {
	url := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, reader)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}

	// Request-specific headers override defaults.
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpReq.Header.Set(RequestIDHeader, requestID)

	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	// Request-level auth overrides client-level auth. Applied per attempt so a
	// token refreshed between retries is picked up.
	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	if err := auth.apply(ctx, httpReq); err != nil {
		return nil, err
	}

	return httpReq, nil
}

// encodeBody buffers a body value and reports its content type.
func encodeBody(body any) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		data, err := io.ReadAll(v)
		return data, "", err
	case []byte:
		return v, "", nil
	case string:
		return []byte(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// GetConfig returns the client's configuration.
func (c *Client) GetConfig() Config {
	return c.config
}
